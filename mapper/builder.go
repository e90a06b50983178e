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

import (
	"fmt"
	"math"
	"net/http"
	"net/url"

	"dirpx.dev/problem/apis"
)

// matcher reports whether an exception entry handles err. The returned
// subject is the error value the entry matched on (the T found in the chain
// for hierarchy matches); it drives title formatting.
type matcher func(err error) (subject error, ok bool)

// entrySettings holds per-registration tuning collected from EntryOptions.
type entrySettings struct {
	// order is the explicit priority; lower values are tried first.
	order int
	// status is the entry default status used when the error declares none.
	status int
	// statusFrom derives the entry default status from the error.
	statusFrom func(error) int
	// force, when non-zero, replaces the declared status (validation).
	force int
	// title replaces the formatted type name.
	title string
	// titleFrom derives the title from the error.
	titleFrom func(error) string
	// detailFrom derives the detail from the error.
	detailFrom func(error) string
}

// exceptionEntry is a registered exception mapper before freezing.
type exceptionEntry struct {
	key    string
	seq    int
	match  matcher
	custom apis.ExceptionMapper
	entrySettings
}

// responseEntry is a registered response mapper before freezing.
type responseEntry struct {
	// code is the status key: a status code or status.Any.
	code   int
	seq    int
	custom apis.ResponseMapper
	entrySettings
}

// overrides holds the exception-level field overrides.
type overrides struct {
	status   func(error) int
	typ      func(error) string
	title    func(error) string
	detail   func(error) string
	instance func(error) string
}

// contextOverrides holds the context-level field overrides.
type contextOverrides struct {
	status   func(*http.Request) int
	typ      func(*http.Request) string
	title    func(*http.Request) string
	detail   func(*http.Request) string
	instance func(*http.Request) string
}

// config is the frozen configuration shared by all built-in mappers of a
// Resolver. It is never modified after New.
type config struct {
	exception overrides
	context   contextOverrides

	// defaultHelpLink is the validated fallback type URI, "" when unset.
	defaultHelpLink string
	// expose enables the extension extractor.
	expose bool
	// includeDetails decides whether "errorDetails" is written.
	includeDetails func(*http.Request) bool
}

type builder struct {
	cfg config

	// helpLink is the raw default help link, validated in New.
	helpLink string

	exceptions []exceptionEntry
	responses  []responseEntry

	noDefaults bool

	// seq is the registration counter used as the order tie-break.
	seq int

	// errs collects configuration errors reported by options.
	errs []error
}

// lastOrder places the built-in default mappers after every caller
// registration.
const lastOrder = math.MaxInt

// newBuilder creates a builder with the library defaults: extension
// exposure on, no help link, default mappers enabled.
func newBuilder() *builder {
	return &builder{
		cfg: config{expose: true},
	}
}

func (b *builder) fail(err error) { b.errs = append(b.errs, err) }

func (b *builder) next() int {
	b.seq++
	return b.seq
}

func (b *builder) addException(key string, m matcher, opts []EntryOption, extra ...EntryOption) {
	e := exceptionEntry{key: key, seq: b.next(), match: m}
	for _, o := range opts {
		if o != nil {
			o(&e.entrySettings)
		}
	}
	for _, o := range extra {
		o(&e.entrySettings)
	}
	b.exceptions = append(b.exceptions, e)
}

func (b *builder) addCustomException(m apis.ExceptionMapper, opts []EntryOption) {
	e := exceptionEntry{key: fmt.Sprintf("%T", m), seq: b.next(), custom: m}
	for _, o := range opts {
		if o != nil {
			o(&e.entrySettings)
		}
	}
	b.exceptions = append(b.exceptions, e)
}

func (b *builder) addResponse(code int, m apis.ResponseMapper, opts []EntryOption) {
	e := responseEntry{code: code, seq: b.next(), custom: m}
	for _, o := range opts {
		if o != nil {
			o(&e.entrySettings)
		}
	}
	b.responses = append(b.responses, e)
}

// freeze validates the collected settings and returns the immutable config.
func (b *builder) freeze() (*config, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	cfg := b.cfg
	if b.helpLink != "" {
		if !absoluteURI(b.helpLink) {
			return nil, fmt.Errorf("%w: default help link %q is not an absolute URI", ErrInvalidOption, b.helpLink)
		}
		cfg.defaultHelpLink = b.helpLink
	}
	return &cfg, nil
}

// absoluteURI reports whether s parses as an absolute URI.
func absoluteURI(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}
