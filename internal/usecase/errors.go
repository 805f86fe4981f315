package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// HTTPError carries the status and body message a handler should write.
type HTTPError struct {
	Status  int
	Message string
	// field name -> message, only for validation failures
	Fields map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// NewValidationError is a 400 pinned to one input field.
func NewValidationError(field string, message string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: message,
		Fields:  map[string]string{field: message},
	}
}

// maxChars is the length limit of every varchar(255) text column.
const maxChars = 255

// checkMaxChars counts characters, not bytes, to agree with the
// request validator's max tag.
func checkMaxChars(field string, s string) error {
	if utf8.RuneCountInString(s) > maxChars {
		return NewValidationError(field, fmt.Sprintf("ensure this field has no more than %d characters", maxChars))
	}
	return nil
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

var (
	errNotFound = NewHTTPError(http.StatusNotFound, "not found")

	errProductReferenced    = NewHTTPError(http.StatusMethodNotAllowed, "product cannot be deleted because it is associated with an order item")
	errCollectionReferenced = NewHTTPError(http.StatusMethodNotAllowed, "collection cannot be deleted because it is associated with products")
	errCustomerReferenced   = NewHTTPError(http.StatusMethodNotAllowed, "customer cannot be deleted because it is associated with orders")
)
