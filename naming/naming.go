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

package naming

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// typeSuffixes are stripped from error type names when formatting a title.
// Only the first matching suffix is removed.
var typeSuffixes = []string{"Exception", "Error"}

// Fold removes diacritics: the input is decomposed (NFD), non-spacing marks
// are dropped and the result is recomposed (NFC). "Café" becomes "Cafe".
func Fold(s string) string {
	// transform chains are stateful; build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Words splits s into words. A new word starts:
//
//   - after any rune that is neither a letter nor a digit (the rune is dropped);
//   - at an upper-case rune that follows a lower-case rune or a digit;
//   - at the last upper-case rune of an acronym followed by a lower-case rune.
func Words(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	rs := []rune(s)
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// Slug lower-cases s and joins its words with hyphens. Diacritics are removed
// first. An input without any letter or digit yields "".
func Slug(s string) string {
	words := Words(Fold(s))
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

// LowerCamel converts s into a lower camel case key: the first word is
// lower-cased, the following ones start with an upper-case rune.
//
//	LowerCamel("PropertyA")  == "propertyA"
//	LowerCamel("HTTPStatus") == "httpStatus"
//	LowerCamel("retry_after") == "retryAfter"
func LowerCamel(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(strings.ToLower(w[size:]))
	}
	return b.String()
}

// TypeTitle formats a Go type name as a human title. The pointer marker,
// package qualifier and type parameters are removed, then one "Exception" or
// "Error" suffix is stripped and the first letter is upper-cased:
//
//	TypeTitle("*app.DivideByZeroError") == "DivideByZero"
//	TypeTitle("DivideByZeroException")  == "DivideByZero"
//	TypeTitle("*errors.errorString")    == "ErrorString"
//
// It returns "" when nothing is left (for example a type named "Error"), so
// callers can fall back to another title source.
func TypeTitle(name string) string {
	name = strings.TrimLeft(name, "*")
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	for _, suffix := range typeSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}
	if name == "" {
		return ""
	}
	// Casers are stateful as well.
	return cases.Title(language.Und, cases.NoLower).String(name)
}

// TypeName returns the dynamic type of v as printed by reflect, e.g.
// "*app.DivideByZeroError". It returns "" for a nil value.
func TypeName(v any) string {
	if v == nil {
		return ""
	}
	return reflect.TypeOf(v).String()
}
