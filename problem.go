/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package problem

import (
	"net/http"

	"dirpx.dev/problem/apis"
	"dirpx.dev/problem/status"
)

// Error is a typed HTTP error: an error that knows the status it must be
// reported with.
//
// It carries:
//   - Status: declared HTTP status code (required);
//   - Message: human-oriented description, becomes the problem "detail";
//   - Link: optional help link, becomes "instance" and "type" when absolute.
//     Without it, instance is the request path and type is the RFC section of
//     Status;
//   - Fields: explicitly exposed properties, become extension members;
//   - Cause: wrapped underlying error for errors.Is / errors.As.
//
// All mutation helpers (WithX) return a shallow copy, so Error instances
// can be safely shared and modified in a functional style.
type Error struct {
	// Status is the declared HTTP status, e.g. 404. Values outside 100..599
	// are ignored by the mapper.
	Status int

	// Message is a human-readable explanation of this occurrence.
	Message string

	// Link is an optional help link.
	Link string

	// Fields lists the properties exposed as problem extensions. Treated as
	// immutable: WithField always copies it.
	Fields []apis.Field

	// Cause holds the wrapped underlying error (if any).
	Cause error
}

var (
	_ apis.StatusCoder       = (*Error)(nil)
	_ apis.HelpLinker        = (*Error)(nil)
	_ apis.ExtensionProvider = (*Error)(nil)
)

// New is the constructor for Error.
//
// Usage:
//
//	return problem.New(http.StatusConflict, "order already paid",
//	    problem.WithFieldOption("OrderID", id),
//	    problem.WithCauseOption(err),
//	)
//
// It always returns a *new* Error and applies all provided options in order.
func New(code int, msg string, opts ...Option) *Error {
	e := &Error{Status: code, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface. It returns the message, or
// the canonical status name when the message is empty.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return e.Message
	}
	return status.Name(e.Status)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// HTTPStatus returns the declared status, or 0 for a nil *Error.
func (e *Error) HTTPStatus() int {
	if e == nil {
		return 0
	}
	return e.Status
}

// HelpLink returns the explicit Link. The RFC section of Status is not a
// help link: the mapper uses it for "type" only.
func (e *Error) HelpLink() string {
	if e == nil {
		return ""
	}
	return e.Link
}

// ProblemExtensions returns a copy of the exposed fields.
func (e *Error) ProblemExtensions() []apis.Field {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	out := make([]apis.Field, len(e.Fields))
	copy(out, e.Fields)
	return out
}

// WithStatus returns a shallow copy of e with another declared status.
func (e *Error) WithStatus(code int) *Error {
	cp := *e
	cp.Status = code
	return &cp
}

// WithMessage returns a shallow copy of e with a replaced human message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithLink returns a shallow copy of e with the given help link.
func (e *Error) WithLink(link string) *Error {
	cp := *e
	cp.Link = link
	return &cp
}

// WithField returns a shallow copy of e with one more exposed field.
//
// The slice is always copied, so appending to a shared error never leaks
// into other copies.
func (e *Error) WithField(name string, value any) *Error {
	cp := *e
	fields := make([]apis.Field, 0, len(e.Fields)+1)
	fields = append(fields, e.Fields...)
	cp.Fields = append(fields, apis.F(name, value))
	return &cp
}

// WithCause returns a shallow copy of e with the given underlying cause attached.
// If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// BadRequest returns a 400 error.
func BadRequest(msg string, opts ...Option) *Error {
	return New(http.StatusBadRequest, msg, opts...)
}

// Unauthorized returns a 401 error.
func Unauthorized(msg string, opts ...Option) *Error {
	return New(http.StatusUnauthorized, msg, opts...)
}

// Forbidden returns a 403 error.
func Forbidden(msg string, opts ...Option) *Error {
	return New(http.StatusForbidden, msg, opts...)
}

// NotFound returns a 404 error.
func NotFound(msg string, opts ...Option) *Error {
	return New(http.StatusNotFound, msg, opts...)
}

// Conflict returns a 409 error.
func Conflict(msg string, opts ...Option) *Error {
	return New(http.StatusConflict, msg, opts...)
}

// UnprocessableEntity returns a 422 error.
func UnprocessableEntity(msg string, opts ...Option) *Error {
	return New(http.StatusUnprocessableEntity, msg, opts...)
}

// TooManyRequests returns a 429 error.
func TooManyRequests(msg string, opts ...Option) *Error {
	return New(http.StatusTooManyRequests, msg, opts...)
}

// Internal returns a 500 error.
func Internal(msg string, opts ...Option) *Error {
	return New(http.StatusInternalServerError, msg, opts...)
}

// ServiceUnavailable returns a 503 error.
func ServiceUnavailable(msg string, opts ...Option) *Error {
	return New(http.StatusServiceUnavailable, msg, opts...)
}
