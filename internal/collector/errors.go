package collector

import (
	"errors"
	"fmt"
)

// Failure codes for the add-indicator flow. Only BROWSER_UNAVAILABLE is shown
// to the user by default; VALIDATION, SCRAPE_TIMEOUT and CANCELED stay silent
// unless strict mode is on.
const (
	CodeValidation         = "VALIDATION"
	CodeCanceled           = "CANCELED"
	CodeBrowserUnavailable = "BROWSER_UNAVAILABLE"
	CodeScrapeTimeout      = "SCRAPE_TIMEOUT"
	CodeStoreFailure       = "STORE_FAILURE"
)

// CodedError is a typed error used for stable CLI and API mapping.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *CodedError) Unwrap() error { return e.Cause }

func newError(code, msg string, cause error) error {
	return &CodedError{Code: code, Message: msg, Cause: cause}
}

// IsCode reports whether err is a CodedError carrying the given code.
func IsCode(err error, code string) bool {
	var coded *CodedError
	return errors.As(err, &coded) && coded.Code == code
}
