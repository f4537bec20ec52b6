package core

import (
	"encoding/json"
	"fmt"
)

type Unit struct{}

// CommandError carries the HTTP status a failed command or query
// maps to, along with the underlying cause.
type CommandError struct {
	Payload    interface{}
	StatusCode int
	Reason     *string
}

type CommandErrorOption func(*CommandError)

func WithReason(reason string) CommandErrorOption {
	return func(e *CommandError) {
		e.Reason = &reason
	}
}

func NewCommandError(statusCode int, payload interface{}, opts ...CommandErrorOption) CommandError {
	e := CommandError{
		StatusCode: statusCode,
		Payload:    payload,
	}

	for _, opt := range opts {
		opt(&e)
	}

	return e
}

// NewValidationError maps malformed or out-of-enum input to a 400.
func NewValidationError(payload interface{}, opts ...CommandErrorOption) CommandError {
	return NewCommandError(400, payload, opts...)
}

// NewNotFoundError maps an unknown record id to a 404.
func NewNotFoundError(payload interface{}, opts ...CommandErrorOption) CommandError {
	return NewCommandError(404, payload, opts...)
}

// NewUpstreamError maps a failed external collaborator call to a 502.
func NewUpstreamError(payload interface{}, opts ...CommandErrorOption) CommandError {
	return NewCommandError(502, payload, opts...)
}

func (r CommandError) message() string {
	switch payload := r.Payload.(type) {
	case error:
		return payload.Error()
	case string:
		return payload
	}

	if r.Reason != nil {
		return *r.Reason
	}

	return "internal server error"
}

func (r CommandError) Error() string {
	if r.Reason != nil {
		return fmt.Sprintf("%s: %s", *r.Reason, r.message())
	}

	return r.message()
}

// MarshalJSON renders the error as the response body shape every
// endpoint uses - a single human-readable message.
func (r CommandError) MarshalJSON() ([]byte, error) {
	body := struct {
		Error string `json:"error"`
	}{
		Error: r.message(),
	}

	return json.Marshal(body)
}
