package protocol

import (
	"errors"
	"fmt"
)

// ContentTypeText is the only content type produced by the server.
const ContentTypeText = "text"

// Content is a single response item.
type Content struct {
	// Type is always "text".
	Type string `json:"type"`
	// Text is the message body.
	Text string `json:"text"`
}

// Response is the uniform value returned for every tool call.
type Response struct {
	// Content holds exactly one text item.
	Content []Content `json:"content"`
	// IsError marks failed calls.
	IsError bool `json:"isError,omitempty"`
}

// Text returns a successful response carrying text.
func Text(text string) Response {
	return Response{Content: []Content{{Type: ContentTypeText, Text: text}}}
}

// Failure returns an error response carrying text.
func Failure(text string) Response {
	return Response{Content: []Content{{Type: ContentTypeText, Text: text}}, IsError: true}
}

// Message returns the text of the first content item.
func (r Response) Message() string {
	if len(r.Content) == 0 {
		return ""
	}
	return r.Content[0].Text
}

// Kind classifies a failure.
type Kind int

// Failure kinds.
const (
	// KindEnvelope is a malformed request or unknown tool.
	KindEnvelope Kind = iota + 1
	// KindValidation is an argument of the wrong type or shape.
	KindValidation
	// KindExecution is a failed external command.
	KindExecution
)

func (k Kind) String() string {
	switch k {
	case KindEnvelope:
		return "envelope"
	case KindValidation:
		return "validation"
	case KindExecution:
		return "execution"
	default:
		return "unknown"
	}
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Envelopef returns an envelope error.
func Envelopef(format string, args ...any) error {
	return &Error{Kind: KindEnvelope, Err: fmt.Errorf(format, args...)}
}

// Validationf returns a validation error.
func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Err: fmt.Errorf(format, args...)}
}

// Execution wraps err as an execution error.
func Execution(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindExecution, Err: err}
}

// KindOf reports the kind of err, defaulting to KindExecution for unclassified errors.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindExecution
}
