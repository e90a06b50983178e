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

import "net/http"

// Response is the minimal view of an HTTP response that finished with an
// error status and no body, e.g. a 401 written by an authentication
// middleware.
type Response struct {
	// StatusCode is the status the response was going to be written with.
	StatusCode int

	// Request is the request being served. May be nil.
	Request *http.Request

	// Header holds the response headers set so far. May be nil.
	Header http.Header
}

// ExceptionMapper converts an error into a problem Result.
//
// Implementations must be safe for concurrent use.
type ExceptionMapper interface {
	// CanMap reports whether err is handled by this mapper.
	CanMap(err error, r *http.Request) bool

	// TryMap maps err. It returns false when err is not handled or when
	// building the result failed for any reason.
	TryMap(err error, r *http.Request) (Result, bool)

	// Map maps err and fails with an error when err is not handled.
	Map(err error, r *http.Request) (Result, error)
}

// ResponseMapper converts an empty-bodied error response into a problem
// Result.
//
// Implementations must be safe for concurrent use.
type ResponseMapper interface {
	// CanMap reports whether responses with the given status are handled.
	CanMap(status int) bool

	// TryMap maps resp. It returns false when resp is not handled or when
	// building the result failed for any reason.
	TryMap(resp *Response) (Result, bool)

	// Map maps resp and fails with an error when resp is not handled.
	Map(resp *Response) (Result, error)
}

// Resolver is an immutable, concurrency-safe, ordered collection of mappers.
// Resolution is first-match: the first mapper whose TryMap succeeds wins.
type Resolver interface {
	// TryMapError maps err with the first applicable exception mapper.
	// It returns false when no mapper handled err.
	TryMapError(err error, r *http.Request) (Result, bool)

	// TryMapResponse maps resp with the first applicable response mapper.
	// It returns false when no mapper handled resp.
	TryMapResponse(resp *Response) (Result, bool)

	// Explain returns a human-readable description of how err is resolved:
	// which mapper matched and which tier produced every field.
	Explain(err error, r *http.Request) string

	// ExplainResponse is the Explain counterpart for responses.
	ExplainResponse(resp *Response) string

	// Descriptors lists the registered mappers in resolution order.
	Descriptors() []MapperDescriptor
}
