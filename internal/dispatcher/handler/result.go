package handler

import (
	"fmt"

	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
)

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Edit records one replaced span of an applied batch.
type Edit struct {
	// Range is the range that was replaced, in pre-edit offsets.
	Range buffer.Range
	// NewText is the text that was inserted.
	NewText string
	// OldText is the text that was replaced.
	OldText string
}

// ViewUpdate describes required view updates.
type ViewUpdate struct {
	// Reveal is the range the view should make visible.
	Reveal *buffer.Range
	// Redraw indicates whether the entire view needs redrawing.
	Redraw bool
}

// Result represents the outcome of handling an action.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for display.
	Message string

	// Edits contains text edits that were applied.
	Edits []Edit

	// ViewUpdate indicates required view updates.
	ViewUpdate ViewUpdate

	// Data holds handler-specific return data.
	Data map[string]interface{}
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithData creates a successful result with data.
func SuccessWithData(key string, value interface{}) Result {
	return Result{
		Status: StatusOK,
		Data:   map[string]interface{}{key: value},
	}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage creates a no-operation result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...interface{}) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithReveal returns a copy of the result asking the view to reveal rng.
func (r Result) WithReveal(rng buffer.Range) Result {
	r.ViewUpdate.Reveal = &rng
	return r
}

// WithRedraw returns a copy of the result requesting a full redraw.
func (r Result) WithRedraw() Result {
	r.ViewUpdate.Redraw = true
	return r
}

// WithEdits returns a copy of the result with edits added.
func (r Result) WithEdits(edits []Edit) Result {
	r.Edits = append(r.Edits, edits...)
	return r
}

// WithData returns a copy of the result with data added.
func (r Result) WithData(key string, value interface{}) Result {
	if r.Data == nil {
		r.Data = make(map[string]interface{})
	}
	r.Data[key] = value
	return r
}

// GetData retrieves a value from the result data.
func (r Result) GetData(key string) (interface{}, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}
