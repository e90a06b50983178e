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

// Field is a single exposable property of an error, declared explicitly by
// the error type through ExtensionProvider.
//
// Name is the Go-style property name ("RetryAfter"); the mapper converts it
// to a lower camel case extension key ("retryAfter"). Value should be a
// scalar (string, bool or a number); other values are skipped by the
// extension extractor.
type Field struct {
	Name  string
	Value any
}

// F is a short constructor for Field, convenient inside ProblemExtensions
// implementations:
//
//	func (e *QuotaError) ProblemExtensions() []apis.Field {
//	    return []apis.Field{apis.F("Limit", e.Limit), apis.F("Used", e.Used)}
//	}
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// ErrorDetails is the diagnostic view of an error chain written to the
// "errorDetails" extension when error details are included (typically in
// development environments only).
type ErrorDetails struct {
	// Type is the dynamic Go type of the error, e.g. "*app.DivideByZeroError".
	Type string `json:"type"`

	// Message is the error's message.
	Message string `json:"message"`

	// Causes lists the messages of the wrapped errors, outermost first.
	Causes []string `json:"causes,omitempty"`
}
