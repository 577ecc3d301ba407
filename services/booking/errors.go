package booking

import "fmt"

// FlowError carries a stable code alongside a human-readable message.
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewStoreError(msg string) error {
	return &FlowError{
		Code:    "storeUnavailable",
		Message: msg,
	}
}
