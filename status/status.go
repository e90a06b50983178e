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

package status

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// Any is the wildcard status key. A response mapper registered with Any
// accepts every status code.
const Any = -1

// Min and Max bound the valid HTTP status range. A problem document must
// always carry a three-digit status.
const (
	Min = 100
	Max = 599
)

var (
	// ErrStatusInvalid is returned when a value cannot be parsed as a status
	// key (a three-digit status code or the wildcard).
	ErrStatusInvalid = errors.New("problem: invalid status")
)

// Valid reports whether code is a three-digit HTTP status in the 100..599 range.
func Valid(code int) bool {
	return code >= Min && code <= Max
}

// ValidKey reports whether key can be used to register a response mapper:
// either a valid status or Any.
func ValidKey(key int) bool {
	return key == Any || Valid(key)
}

// Name returns the canonical name of the status code, e.g. "Unauthorized"
// for 401. Codes without a registered name fall back to their decimal form.
func Name(code int) string {
	if s := http.StatusText(code); s != "" {
		return s
	}
	return strconv.Itoa(code)
}

// Link returns the RFC section describing the status code. Only
// well-known standard codes have a link; ok is false otherwise.
func Link(code int) (link string, ok bool) {
	link, ok = links[code]
	return link, ok
}

// Class returns the status class (1..5) of a valid code and 0 otherwise.
func Class(code int) int {
	if !Valid(code) {
		return 0
	}
	return code / 100
}

// Normalize trims surrounding spaces and lowercases the key so that "ANY",
// " * " and "any" are treated alike.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Parse converts a textual status key into its integer form. It accepts a
// three-digit status code, "*" or "any" (mapped to Any).
func Parse(s string) (int, error) {
	s = Normalize(s)
	switch s {
	case "*", "any":
		return Any, nil
	case "":
		return 0, ErrStatusInvalid
	}
	n, err := strconv.Atoi(s)
	if err != nil || !Valid(n) {
		return 0, ErrStatusInvalid
	}
	return n, nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) int {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Key formats a status key for diagnostics: "*" for Any and the decimal
// code otherwise.
func Key(key int) string {
	if key == Any {
		return "*"
	}
	return strconv.Itoa(key)
}
