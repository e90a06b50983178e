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

// StatusCoder is implemented by typed HTTP errors that declare the status
// they should be reported with.
//
// The mapper only trusts values in the 100..599 range; anything else is
// treated as "not declared".
type StatusCoder interface {
	error

	// HTTPStatus returns the declared HTTP status code.
	HTTPStatus() int
}

// HelpLinker is implemented by errors that carry a help link: a URI pointing
// at documentation about the problem or at the failing resource.
//
// A help link is only used when it parses as an absolute URI. Malformed links
// (e.g. "invalid-link") are ignored and the next tier is consulted.
type HelpLinker interface {
	error

	// HelpLink returns the help link, or "" when there is none.
	HelpLink() string
}

// ExtensionProvider is implemented by errors that expose some of their
// properties in the problem document.
//
// Exposure is strictly opt-in: only the fields returned here are considered,
// and only scalar values among them are written. No implicit scanning of the
// error's fields ever happens.
type ExtensionProvider interface {
	error

	// ProblemExtensions returns the exposable properties. May return nil.
	ProblemExtensions() []Field
}

// ValidationErrorer is implemented by validation-style errors carrying a map
// of field name -> messages. Mappers report such errors with 400 Bad Request
// and an "errors" extension.
//
// Implementations SHOULD return a map that is safe to read and that will not
// be modified afterwards. Duplicate messages are kept as given.
type ValidationErrorer interface {
	error

	// ValidationErrors returns the field -> messages map. May return nil.
	ValidationErrors() map[string][]string
}
