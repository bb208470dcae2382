package httperrors

import (
	"fmt"
	"net/http"
)

// HTTPError is the public error payload of the API.
type HTTPError struct {
	Code   int    `json:"status"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
}

func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		Code:  code,
		Type:  errorType,
		Title: title,
	}
}

func NewHTTPErrorWithDetail(code int, errorType string, title string, detail string) *HTTPError {
	return &HTTPError{
		Code:   code,
		Type:   errorType,
		Title:  title,
		Detail: detail,
	}
}

const (
	TypeGeneric           = "generic"
	TypeInvalidAddress    = "INVALID_ADDRESS"
	TypeWalletNotFound    = "WALLET_NOT_FOUND"
	TypeWithdrawFailed    = "WITHDRAW_FAILED"
	TypeBroadcastRejected = "BROADCAST_REJECTED"
)

var (
	ErrBadRequestInvalidAddress = NewHTTPError(http.StatusBadRequest, TypeInvalidAddress, "Address is not a valid base58 chain address.")
	ErrNotFoundWalletSecret     = NewHTTPError(http.StatusNotFound, TypeWalletNotFound, "No wallet secret exists for the given wallet.")
)
