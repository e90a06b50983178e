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

// Package mapper turns Go errors and empty-bodied error responses into
// problem details documents (RFC 7807 / RFC 9457).
//
// # Overview
//
// A Resolver is an immutable, ordered collection of mappers built once at
// process start:
//
//	res, err := mapper.New(
//	    mapper.WithDefaultHelpLink("https://docs.example.com/errors"),
//	    mapper.MapValidation(),
//	    mapper.MapException[*store.NotFoundError](mapper.DefaultStatus(http.StatusNotFound)),
//	    mapper.MapSentinel(context.DeadlineExceeded, mapper.DefaultStatus(http.StatusGatewayTimeout)),
//	)
//
// Resolution is first-match: mappers are tried in ascending Order, and in
// registration order among equal values. Unless WithoutDefaultMappers is
// given, a catch-all exception mapper and a wildcard response mapper are
// appended after every caller registration.
//
// # Matching
//
//   - MapException[T] matches any error for which errors.As finds a T in the
//     chain. T may be an interface, in which case every implementing type
//     matches;
//   - MapExactException[T] matches only errors whose dynamic type is T;
//   - MapSentinel matches errors for which errors.Is reports the target;
//   - MapResponse matches responses with one status code, or every status
//     with status.Any.
//
// A mapper that panics while building its result declines, and resolution
// continues with the next one.
//
// # Field rules
//
// Every field of the document goes through the same tiers, and the first
// tier producing a usable value wins:
//
//  1. the exception-level override (WithExceptionStatus, WithExceptionTitle, ...);
//  2. the context-level override (WithContextStatus, WithContextTitle, ...);
//  3. the built-in default.
//
// Built-in defaults for exceptions:
//
//	status    declared by apis.StatusCoder, else the entry default, else 500
//	title     entry title, else the formatted type name ("DivideByZero"), else the status name
//	detail    err.Error(), else the title
//	instance  an absolute help link, else the request path, else absent
//	type      an absolute help link, else the status link of a declared status,
//	          else the default help link, else "error:<slug of title>"
//
// Responses use the actual status, the status name as title and detail, the
// request path as instance, and the status link, default help link or slug
// as type.
//
// # Diagnostics
//
// Resolver.Explain returns a human-readable trace naming the matched mapper
// and the tier that produced every field. It is intended for inspection and
// logging, not for stable machine parsing.
//
// # Immutability
//
// All user-provided inputs are copied during New. After construction, the
// Resolver is safe to share across handlers, goroutines and requests.
// Override functions are called concurrently and must be safe for that.
package mapper
