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
	"fmt"
	"net/http"
	"sort"

	"dirpx.dev/problem/apis"
)

// FieldError is a structured validation failure: a message plus the names
// of the members it concerns.
type FieldError struct {
	Message string
	Members []string
}

// ValidationError reports invalid input as a map of field name to messages.
// It is always reported with 400 Bad Request.
//
// Messages are kept exactly as given: duplicates are not merged.
type ValidationError struct {
	// Message is the human-readable summary. Defaults to
	// "One or more validation errors occurred.".
	Message string

	errs   map[string][]string
	fields map[string][]FieldError
}

var (
	_ apis.StatusCoder       = (*ValidationError)(nil)
	_ apis.ValidationErrorer = (*ValidationError)(nil)
)

const defaultValidationMessage = "One or more validation errors occurred."

// Invalid returns a validation error for a single field.
func Invalid(field string, msgs ...string) *ValidationError {
	m := make([]string, len(msgs))
	copy(m, msgs)
	return &ValidationError{errs: map[string][]string{field: m}}
}

// NewValidationError returns a validation error built from a field ->
// messages map. The map and its slices are copied.
func NewValidationError(errs map[string][]string) *ValidationError {
	cp := make(map[string][]string, len(errs))
	for k, v := range errs {
		m := make([]string, len(v))
		copy(m, v)
		cp[k] = m
	}
	return &ValidationError{errs: cp}
}

// NewValidationErrorFromFields returns a validation error built from
// structured field errors. Every FieldError is reduced to its message under
// the field name; the structured form stays available through FieldErrors.
func NewValidationErrorFromFields(fields map[string][]FieldError) *ValidationError {
	errs := make(map[string][]string, len(fields))
	cp := make(map[string][]FieldError, len(fields))
	for k, list := range fields {
		msgs := make([]string, 0, len(list))
		for _, fe := range list {
			msgs = append(msgs, fe.Message)
		}
		errs[k] = msgs
		cp[k] = append([]FieldError(nil), list...)
	}
	return &ValidationError{errs: errs, fields: cp}
}

// Error implements the built-in error interface.
func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = defaultValidationMessage
	}
	if len(e.errs) == 0 {
		return msg
	}
	keys := make([]string, 0, len(e.errs))
	for k := range e.errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s (fields: %v)", msg, keys)
}

// HTTPStatus always returns 400.
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }

// ValidationErrors returns a copy of the field -> messages map.
func (e *ValidationError) ValidationErrors() map[string][]string {
	if e == nil {
		return map[string][]string{}
	}
	out := make(map[string][]string, len(e.errs))
	for k, v := range e.errs {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// FieldErrors returns the structured errors the value was built from, or nil
// when it was built from plain messages.
func (e *ValidationError) FieldErrors() map[string][]FieldError {
	if e == nil || e.fields == nil {
		return nil
	}
	out := make(map[string][]FieldError, len(e.fields))
	for k, v := range e.fields {
		out[k] = append([]FieldError(nil), v...)
	}
	return out
}

// Add returns a copy of e with msgs appended to field.
func (e *ValidationError) Add(field string, msgs ...string) *ValidationError {
	cp := &ValidationError{errs: e.ValidationErrors(), fields: e.FieldErrors()}
	if e != nil {
		cp.Message = e.Message
	}
	cp.errs[field] = append(cp.errs[field], msgs...)
	return cp
}
