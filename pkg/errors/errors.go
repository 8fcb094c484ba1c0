// Package errors provides structured error handling for the presentation core.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindRender indicates a view render request failure.
	KindRender
	// KindLayout indicates a layout pass failure.
	KindLayout
	// KindDispatch indicates an event dispatch failure.
	KindDispatch
	// KindConfig indicates a configuration error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindRender:
		return "render"
	case KindLayout:
		return "layout"
	case KindDispatch:
		return "dispatch"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// PresentError represents a structured error in the presentation core.
type PresentError struct {
	// Op is the operation that failed (e.g., "presenter.BuildScene").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// View is the view identity involved, if applicable (0 when unset).
	View uint64
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *PresentError) Error() string {
	if e.View != 0 {
		return fmt.Sprintf("%s [%s] view=%d: %v", e.Op, e.Kind, e.View, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *PresentError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "presenter.DispatchEvent").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the presentation core.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *PresentError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
