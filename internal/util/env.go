package util

import (
	"os"
	"strconv"
	"strings"
)

// GetEnv returns the ENV variable or the provided fallback if unset.
func GetEnv(key string, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return fallback
}

// GetEnvAsInt returns the ENV variable parsed as int or the provided fallback.
func GetEnvAsInt(key string, fallback int) int {
	strVal, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	val, err := strconv.Atoi(strVal)
	if err != nil {
		return fallback
	}

	return val
}

// GetEnvAsInt64 returns the ENV variable parsed as int64 or the provided fallback.
func GetEnvAsInt64(key string, fallback int64) int64 {
	strVal, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	val, err := strconv.ParseInt(strVal, 10, 64)
	if err != nil {
		return fallback
	}

	return val
}

// GetEnvAsBool returns the ENV variable parsed as bool or the provided fallback.
func GetEnvAsBool(key string, fallback bool) bool {
	strVal, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	val, err := strconv.ParseBool(strVal)
	if err != nil {
		return fallback
	}

	return val
}

// GetEnvAsStringArr returns the ENV variable split by separator (default ",")
// or the provided fallback. Empty values are retained.
func GetEnvAsStringArr(key string, fallback []string, separator ...string) []string {
	strVal, ok := os.LookupEnv(key)
	if !ok || strVal == "" {
		return fallback
	}

	sep := ","
	if len(separator) > 0 {
		sep = separator[0]
	}

	return strings.Split(strVal, sep)
}
