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

// MapperKind tells exception mappers and response mappers apart.
type MapperKind string

const (
	// KindException marks a mapper resolved against errors.
	KindException MapperKind = "exception"
	// KindResponse marks a mapper resolved against empty-bodied responses.
	KindResponse MapperKind = "response"
)

// MapperDescriptor is a flat, diagnostics-friendly description of a
// registered mapper.
//
// Descriptors are returned by Resolver.Descriptors in resolution order:
// ascending Order, registration order among equal values.
type MapperDescriptor struct {
	// Kind is the mapper family.
	Kind MapperKind `json:"kind"`

	// Key identifies what the mapper matches: a Go type such as
	// "*app.DivideByZeroError", a sentinel error message, a status code, or
	// "*" for the wildcard response mapper.
	Key string `json:"key"`

	// Order is the explicit priority; lower values are tried first.
	Order int `json:"order"`
}
