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

// Package wellknown ships ready-made mapper registrations for errors returned
// by common infrastructure libraries: the pgx PostgreSQL driver, go-redis,
// golang-jwt and the standard library (context, request body limits, JSON
// decoding).
//
// Each function returns a single mapper.Option bundling its registrations:
//
//	res, err := mapper.New(
//	    wellknown.Postgres(),
//	    wellknown.JWT(),
//	    mapper.MapValidation(),
//	)
//
// Driver messages never reach clients: every registration derives a generic
// detail from the error instead of err.Error().
package wellknown

import "dirpx.dev/problem/mapper"

// All bundles every registration of this package.
func All() mapper.Option {
	return mapper.Bundle(
		Context(),
		Decoding(),
		Postgres(),
		Redis(),
		JWT(),
	)
}

// fixed returns a detail function ignoring the error.
func fixed(detail string) func(error) string {
	return func(error) string { return detail }
}
