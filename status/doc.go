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

// Package status provides the static HTTP status tables used when building
// problem details: canonical status names, the status-code to RFC
// link table and parsing of status keys used to register response mappers.
//
// A status key is either a concrete HTTP status code in the 100..599 range or
// the wildcard Any, which matches every status code. Keys coming from
// configuration are parsed with Parse, which also accepts "*" and "any".
//
// All tables in this package are initialized once and never mutated, so every
// function here is safe for concurrent use.
package status
