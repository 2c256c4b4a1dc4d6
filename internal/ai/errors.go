// README: Error kinds surfaced by the generation pipeline.
package ai

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrEmptyResponse        = errors.New("empty response")
	ErrMalformedResponse    = errors.New("malformed response")
	ErrInvalidPlanStructure = errors.New("invalid plan structure")
	ErrTransportFailure     = errors.New("transport failure")
	ErrValidationFailure    = errors.New("validation failure")
)

// Error carries a kind plus the details callers need. Message is safe to show to a user;
// Raw holds the backend text for diagnostics only.
type Error struct {
	Kind         error
	Message      string
	FinishReason string
	Raw          string
	Err          error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func emptyResponse(finishReason string) *Error {
	if finishReason != "" {
		return &Error{
			Kind:         ErrEmptyResponse,
			Message:      fmt.Sprintf("The AI's response was blocked due to: %s.", finishReason),
			FinishReason: finishReason,
		}
	}
	return &Error{Kind: ErrEmptyResponse, Message: "The AI architect provided an empty response."}
}

// Malformed reports a reply that does not contain a usable JSON value.
func Malformed(reason, raw string, cause error) *Error {
	return &Error{
		Kind:    ErrMalformedResponse,
		Message: "Received malformed JSON from the AI architect: " + reason,
		Raw:     raw,
		Err:     cause,
	}
}

func transport(err error) *Error {
	return &Error{Kind: ErrTransportFailure, Message: "gemini generation error: " + err.Error(), Err: err}
}

// Validation builds a ValidationFailure for a caller-side precondition.
func Validation(msg string) *Error {
	return &Error{Kind: ErrValidationFailure, Message: msg}
}

// InvalidPlanStructure re-labels a sanitizer failure raised during refinement.
func InvalidPlanStructure(cause error) *Error {
	e := &Error{
		Kind:    ErrInvalidPlanStructure,
		Message: "The AI returned an invalid plan structure. Please try rephrasing your request.",
		Err:     cause,
	}
	var inner *Error
	if errors.As(cause, &inner) {
		e.Raw = inner.Raw
	}
	return e
}

// FinishReasonOf extracts the non-normal finish reason from err, if any.
func FinishReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.FinishReason
	}
	return ""
}
