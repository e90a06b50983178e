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

package apis

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ContentType is the media type of a serialized problem document.
const ContentType = "application/problem+json"

// Well-known extension members written by the built-in mappers.
const (
	// ExtensionErrors holds the field -> messages map of validation errors.
	ExtensionErrors = "errors"
	// ExtensionErrorDetails holds ErrorDetails when error details are included.
	ExtensionErrorDetails = "errorDetails"
)

// reserved lists the member names owned by the problem document itself.
// Extensions can never replace them.
var reserved = map[string]struct{}{
	"status":   {},
	"type":     {},
	"title":    {},
	"detail":   {},
	"instance": {},
}

// IsReserved reports whether key is one of the standard problem members.
func IsReserved(key string) bool {
	_, ok := reserved[key]
	return ok
}

// ProblemDetails is a standardized, machine-readable error document
// (RFC 7807 / RFC 9457).
//
// A value is built fresh by a mapper for every mapped error and is not shared
// between requests. Extension members are merged at the top level of the JSON
// object.
type ProblemDetails struct {
	// Status is the HTTP status code. Mappers guarantee a three-digit value.
	Status int

	// Type is a URI reference classifying the problem. Never empty when
	// produced by a mapper.
	Type string

	// Title is a short, human-readable summary of the problem type.
	Title string

	// Detail is a human-readable explanation of this occurrence. Defaults to
	// Title when nothing more specific is known.
	Detail string

	// Instance identifies this occurrence, typically the request path. Empty
	// means absent.
	Instance string

	// Extensions holds additional members, e.g. exposed error fields or the
	// validation "errors" map.
	Extensions map[string]any
}

// Errors returns the validation errors extension, if present.
func (p *ProblemDetails) Errors() (map[string][]string, bool) {
	if p == nil {
		return nil, false
	}
	errs, ok := p.Extensions[ExtensionErrors].(map[string][]string)
	return errs, ok
}

// ErrorDetails returns the error details extension, if present.
func (p *ProblemDetails) ErrorDetails() (ErrorDetails, bool) {
	if p == nil {
		return ErrorDetails{}, false
	}
	d, ok := p.Extensions[ExtensionErrorDetails].(ErrorDetails)
	return d, ok
}

// MarshalJSON writes the standard members first (type, title, status,
// detail, instance) followed by the extension members in key order.
// Instance and detail are omitted when empty; extension keys that collide
// with a standard member are dropped.
func (p ProblemDetails) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(k string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, _ := json.Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(b)
		return nil
	}

	if err := write("type", p.Type); err != nil {
		return nil, err
	}
	if err := write("title", p.Title); err != nil {
		return nil, err
	}
	if err := write("status", p.Status); err != nil {
		return nil, err
	}
	if p.Detail != "" {
		if err := write("detail", p.Detail); err != nil {
			return nil, err
		}
	}
	if p.Instance != "" {
		if err := write("instance", p.Instance); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(p.Extensions))
	for k := range p.Extensions {
		if !IsReserved(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := write(k, p.Extensions[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON is the inverse of MarshalJSON: standard members are decoded
// into their fields, every other member ends up in Extensions. The "errors"
// and "errorDetails" members keep their typed form when they have the
// expected shape.
func (p *ProblemDetails) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := ProblemDetails{}
	fields := map[string]any{
		"status":   &out.Status,
		"type":     &out.Type,
		"title":    &out.Title,
		"detail":   &out.Detail,
		"instance": &out.Instance,
	}
	for k, v := range raw {
		if dst, ok := fields[k]; ok {
			if err := json.Unmarshal(v, dst); err != nil {
				return err
			}
			continue
		}
		ext, err := decodeExtension(k, v)
		if err != nil {
			return err
		}
		if out.Extensions == nil {
			out.Extensions = make(map[string]any)
		}
		out.Extensions[k] = ext
	}

	*p = out
	return nil
}

func decodeExtension(key string, v json.RawMessage) (any, error) {
	switch key {
	case ExtensionErrors:
		var errs map[string][]string
		if json.Unmarshal(v, &errs) == nil && errs != nil {
			return errs, nil
		}
	case ExtensionErrorDetails:
		var d ErrorDetails
		if json.Unmarshal(v, &d) == nil && d.Type != "" {
			return d, nil
		}
	}
	var ext any
	if err := json.Unmarshal(v, &ext); err != nil {
		return nil, err
	}
	return ext, nil
}

// Result is the envelope handed back to the host pipeline: the status code
// to write and the problem document to serialize as the body.
type Result struct {
	// Status is the HTTP status of the response. It always equals
	// Problem.Status for results built by the mapping layer.
	Status int

	// Problem is the body of the response.
	Problem *ProblemDetails
}

// NewResult wraps p into a Result carrying p's status.
func NewResult(p *ProblemDetails) Result {
	if p == nil {
		return Result{}
	}
	return Result{Status: p.Status, Problem: p}
}

// StatusCode returns the HTTP status of the result.
func (r Result) StatusCode() int { return r.Status }

// IsZero reports whether the result carries no problem.
func (r Result) IsZero() bool { return r.Problem == nil }
