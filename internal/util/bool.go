package util

// FalseIfNil returns the dereferenced bool or false for nil.
func FalseIfNil(b *bool) bool {
	if b == nil {
		return false
	}

	return *b
}
