package errors

import (
	"fmt"
	"strings"
)

// MultiErrors collects request validation failures keyed by field so a
// single response can report every bad recipient at once.
type MultiErrors struct {
	Errors map[string][]ErrorInfo `json:"errors"`
}

type ErrorInfo struct {
	Message  string `json:"message"`
	RawError error  `json:"-"`
}

func NewMultiErrors() *MultiErrors {
	return &MultiErrors{
		Errors: make(map[string][]ErrorInfo),
	}
}

func (e *MultiErrors) Add(field, message string, err error) {
	e.Errors[field] = append(e.Errors[field], ErrorInfo{
		Message:  message,
		RawError: err,
	})
}

func (e *MultiErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *MultiErrors) Error() string {
	var parts []string
	for field, infos := range e.Errors {
		for _, info := range infos {
			parts = append(parts, fmt.Sprintf("%s: %s", field, info.Message))
		}
	}
	return strings.Join(parts, " | ")
}
