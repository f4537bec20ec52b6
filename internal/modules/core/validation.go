package core

import (
	"context"
	"strings"

	"github.com/eskrenkovic/mediator-go"
)

// Validator is implemented by commands and queries that validate
// their own payload before the handler runs.
type Validator interface {
	Validate() error
}

type ValidationError struct {
	ValidationErrors []error
}

func (e ValidationError) Error() string {
	var b strings.Builder
	for _, err := range e.ValidationErrors {
		b.WriteString(" '")
		b.WriteString(err.Error())
		b.WriteString("'")
	}
	return b.String()
}

var _ mediator.PipelineBehavior = (*RequestValidationBehavior)(nil)

type RequestValidationBehavior struct{}

func (b *RequestValidationBehavior) Handle(
	ctx context.Context,
	request interface{},
	next mediator.RequestHandlerFunc,
) (interface{}, error) {
	if request, ok := request.(Validator); ok {
		if err := request.Validate(); err != nil {
			return nil, NewValidationError(
				ValidationError{ValidationErrors: []error{err}},
				WithReason("request validation failed"),
			)
		}
	}

	return next(ctx, request)
}
