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

package mapper

import "errors"

var (
	// ErrNoMapping is returned by Resolve when no registered mapper handled
	// the error or response. Callers treat the error as unmapped.
	ErrNoMapping = errors.New("mapper: no mapping found")

	// ErrNilArgument reports a missing error, request or response. Map
	// returns it; TryMap and the resolver panic with it.
	ErrNilArgument = errors.New("mapper: nil argument")

	// ErrOutOfRange is returned by Map when the mapper does not handle the
	// given error type or status code.
	ErrOutOfRange = errors.New("mapper: out of range")

	// ErrInvalidOption is returned by New for unusable configuration.
	ErrInvalidOption = errors.New("mapper: invalid option")

	// ErrMapperFailed is returned by Map when building the result panicked.
	ErrMapperFailed = errors.New("mapper: mapper failed")
)
