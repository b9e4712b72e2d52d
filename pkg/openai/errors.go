package openai

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport reports that the request never produced a response.
	ErrTransport = errors.New("openai: transport failure")
	// ErrDecoding reports a response that does not have the expected shape.
	ErrDecoding = errors.New("openai: response decoding failure")
	// ErrEmptyResponse reports a response without a body.
	ErrEmptyResponse = errors.New("openai: empty response")
	// ErrEncoding reports a payload that could not be serialized. Nothing was sent.
	ErrEncoding = errors.New("openai: request encoding failure")
)

// Error is returned by every operation. Match its kind with errors.Is against
// ErrTransport, ErrDecoding, ErrEmptyResponse or ErrEncoding.
type Error struct {
	Kind       error
	Endpoint   Endpoint
	StatusCode int
	// Body is the raw response body for decoding failures.
	Body []byte
	// API is set when the body was an API error document.
	API *APIError
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v (%s", e.Kind, e.Endpoint)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(", status %d", e.StatusCode)
	}
	msg += ")"
	if e.API != nil {
		msg += ": " + e.API.Error()
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return e.Kind == target }
