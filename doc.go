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

// Package problem provides typed HTTP errors for services that report
// failures as RFC 7807 / RFC 9457 problem details.
//
// The root package only holds error values. The mapping engine that turns
// any error into a problem document lives in the mapper sub-package, and the
// transport adapters live in httpx and grpcx:
//
//	res, err := mapper.New(mapper.MapValidation())
//	...
//	mux.Handle("/", httpx.New(res, logger).Middleware(app))
//
// Errors declare what the mapper may use through small capability
// interfaces from the apis package (status, help link, exposed fields,
// validation errors); *Error and *ValidationError implement them.
package problem
