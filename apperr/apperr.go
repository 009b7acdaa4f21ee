package apperr

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Kind tags an error with the stage of the pipeline it came from.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConfig
	KindData
	KindTransform
	KindSerialize
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindData:
		return "data"
	case KindTransform:
		return "transform"
	case KindSerialize:
		return "serialize"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is the single error value used across the project. It carries the
// kind, a formatted message, the call site that raised it, and the
// original cause when one exists.
type Error struct {
	Kind Kind
	Op   string // file:line where the error was raised
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mlproject: %s: %s: %s: %v", e.Kind, e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("mlproject: %s: %s: %s", e.Kind, e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error with no underlying cause.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: caller(), Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind, message and call site to an underlying error.
// A nil cause is allowed and behaves like New.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: caller(), Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func caller() string {
	// skip caller + New/Wrap
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
