package errors

import (
	"errors"
	"fmt"
)

// BusinessError signals a domain-rule violation. Code is stable for the
// channel; Message is user-facing Spanish copy.
type BusinessError struct {
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBusinessError builds a BusinessError with the given code and copy.
func NewBusinessError(code, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

// ServiceError wraps an infrastructure failure (SQL, crypto, template
// loading, SMTP) behind an internal message. The cause stays reachable
// through Unwrap.
type ServiceError struct {
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err behind an internal message.
func NewServiceError(message string, err error) *ServiceError {
	return &ServiceError{Message: message, Err: err}
}

// InvalidParameterError marks a notification whose data map is missing a
// template-required field. Raised before any rendering happens.
type InvalidParameterError struct {
	Param string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("missing required notification parameter: %s", e.Param)
}

// AsBusiness returns the BusinessError inside err, if any.
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// AsInvalidParameter returns the InvalidParameterError inside err, if any.
func AsInvalidParameter(err error) (*InvalidParameterError, bool) {
	var ie *InvalidParameterError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
