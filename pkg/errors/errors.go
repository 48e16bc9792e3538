// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
)

const maxStackDepth = 32

// Error carries a numeric code, a human readable message, the wrapped cause
// and the stack captured at construction time.
type Error struct {
	Stack      []runtime.Frame
	InnerError error
	Code       int
	Message    string
}

// NewError creates an Error with the caller's stack attached.
func NewError() *Error {
	return &Error{Stack: callers(3)}
}

// WrapError wraps err with a message and code in one call.
func WrapError(err error, message string, code int) *Error {
	e := &Error{Stack: callers(3)}
	return e.WithError(err).WithMessage(message).WithCode(code)
}

func (e *Error) Error() string {
	if e.InnerError == nil {
		return fmt.Sprintf("code %d message %s", e.Code, e.Message)
	}
	return fmt.Sprintf("code %d message %s error %s", e.Code, e.Message, e.InnerError.Error())
}

func (e *Error) Unwrap() error {
	return e.InnerError
}

func (e *Error) WithCode(code int) *Error {
	e.Code = code
	return e
}

func (e *Error) WithMessage(message string) *Error {
	e.Message = message
	return e
}

func (e *Error) WithMessagef(format string, args ...interface{}) *Error {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

func (e *Error) WithError(err error) *Error {
	e.InnerError = err
	return e
}

// GetTopStackString returns "file:line func" for the innermost frame.
func (e *Error) GetTopStackString() string {
	if len(e.Stack) == 0 {
		return ""
	}
	return formatFrame(e.Stack[0])
}

// GetStackString returns every captured frame, one per line.
func (e *Error) GetStackString() string {
	var sb strings.Builder
	for _, frame := range e.Stack {
		sb.WriteString(formatFrame(frame))
		sb.WriteString("\n")
	}
	return sb.String()
}

// IsCode reports whether err, or anything it wraps, is an *Error with the given code.
func IsCode(err error, code int) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func callers(skip int) []runtime.Frame {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	result := make([]runtime.Frame, 0, n)
	for {
		frame, more := frames.Next()
		result = append(result, frame)
		if !more {
			break
		}
	}
	return result
}

func formatFrame(frame runtime.Frame) string {
	funcName := frame.Function
	if idx := strings.LastIndex(funcName, "/"); idx >= 0 {
		funcName = funcName[idx+1:]
	}
	return fmt.Sprintf("%s:%d %s", frame.File, frame.Line, funcName)
}
