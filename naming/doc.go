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

// Package naming turns Go identifiers and human titles into the textual forms
// used inside problem documents.
//
// Three transforms are provided:
//
//   - TypeTitle formats an error type name as a title, e.g.
//     "*app.DivideByZeroError" -> "DivideByZero";
//   - Slug lower-cases a title and joins its words with hyphens, e.g.
//     "DivideByZero" -> "divide-by-zero", "Not Found" -> "not-found";
//   - LowerCamel converts an exported field name into an extension key, e.g.
//     "PropertyA" -> "propertyA".
//
// Word boundaries are detected on case changes (including acronyms such as
// "HTTPError" -> "HTTP", "Error") and on any rune that is neither a letter
// nor a digit. Diacritics are removed before slugging with golang.org/x/text.
package naming
