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
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"dirpx.dev/problem/apis"
	"dirpx.dev/problem/status"
)

// Option configures the Resolver at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Resolver.
type Option func(*builder)

// EntryOption tunes a single mapper registration.
type EntryOption func(*entrySettings)

// Order sets the priority of a registration. Lower values are tried first;
// registrations with equal order keep their registration order. The
// default order is 0.
func Order(n int) EntryOption {
	return func(s *entrySettings) { s.order = n }
}

// DefaultStatus sets the status used when the error does not declare one
// itself. Ignored for response mappers.
func DefaultStatus(code int) EntryOption {
	return func(s *entrySettings) { s.status = code }
}

// StatusFrom derives the default status from the error. It takes precedence
// over DefaultStatus; results outside 100..599 are ignored. Ignored for
// response mappers.
func StatusFrom(fn func(error) int) EntryOption {
	return func(s *entrySettings) { s.statusFrom = fn }
}

// DefaultTitle sets the title used instead of the formatted type name (or
// instead of the status name for response mappers).
func DefaultTitle(title string) EntryOption {
	return func(s *entrySettings) { s.title = title }
}

// TitleFrom derives the entry title from the error. It takes precedence over
// DefaultTitle; an empty result falls through. Ignored for response mappers.
func TitleFrom(fn func(error) string) EntryOption {
	return func(s *entrySettings) { s.titleFrom = fn }
}

// DetailFrom derives the detail from the error instead of err.Error(), e.g.
// to keep driver messages away from clients. An empty result falls through.
// Ignored for response mappers.
func DetailFrom(fn func(error) string) EntryOption {
	return func(s *entrySettings) { s.detailFrom = fn }
}

// ---- exception-level overrides ----

// WithExceptionStatus installs the exception-level status override.
// Results outside 100..599 are skipped.
func WithExceptionStatus(fn func(error) int) Option {
	return func(b *builder) { b.cfg.exception.status = fn }
}

// WithExceptionType installs the exception-level type override.
func WithExceptionType(fn func(error) string) Option {
	return func(b *builder) { b.cfg.exception.typ = fn }
}

// WithExceptionTitle installs the exception-level title override.
func WithExceptionTitle(fn func(error) string) Option {
	return func(b *builder) { b.cfg.exception.title = fn }
}

// WithExceptionDetail installs the exception-level detail override.
func WithExceptionDetail(fn func(error) string) Option {
	return func(b *builder) { b.cfg.exception.detail = fn }
}

// WithExceptionInstance installs the exception-level instance override.
func WithExceptionInstance(fn func(error) string) Option {
	return func(b *builder) { b.cfg.exception.instance = fn }
}

// ---- context-level overrides ----

// WithContextStatus installs the context-level status override.
// Results outside 100..599 are skipped.
func WithContextStatus(fn func(*http.Request) int) Option {
	return func(b *builder) { b.cfg.context.status = fn }
}

// WithContextType installs the context-level type override.
func WithContextType(fn func(*http.Request) string) Option {
	return func(b *builder) { b.cfg.context.typ = fn }
}

// WithContextTitle installs the context-level title override.
func WithContextTitle(fn func(*http.Request) string) Option {
	return func(b *builder) { b.cfg.context.title = fn }
}

// WithContextDetail installs the context-level detail override.
func WithContextDetail(fn func(*http.Request) string) Option {
	return func(b *builder) { b.cfg.context.detail = fn }
}

// WithContextInstance installs the context-level instance override.
func WithContextInstance(fn func(*http.Request) string) Option {
	return func(b *builder) { b.cfg.context.instance = fn }
}

// ---- global settings ----

// WithDefaultHelpLink sets the fallback type URI. The link must be an
// absolute URI; New fails with ErrInvalidOption otherwise. An empty link
// clears the setting.
func WithDefaultHelpLink(link string) Option {
	return func(b *builder) { b.helpLink = link }
}

// WithExposedExtensions enables or disables the extension extractor.
// Enabled by default.
func WithExposedExtensions(enabled bool) Option {
	return func(b *builder) { b.cfg.expose = enabled }
}

// WithIncludeErrorDetails installs the predicate deciding whether the
// "errorDetails" extension is written for a request. Off by default.
func WithIncludeErrorDetails(fn func(*http.Request) bool) Option {
	return func(b *builder) { b.cfg.includeDetails = fn }
}

// Bundle groups several options into one, e.g. a set of registrations
// shipped by a package. Options are applied in order.
func Bundle(opts ...Option) Option {
	return func(b *builder) {
		for _, opt := range opts {
			if opt != nil {
				opt(b)
			}
		}
	}
}

// WithoutDefaultMappers disables the catch-all exception mapper and the
// wildcard response mapper.
func WithoutDefaultMappers() Option {
	return func(b *builder) { b.noDefaults = true }
}

// ---- registrations ----

// MapException registers a hierarchy mapper for T: it handles every error
// for which errors.As finds a T. Register specific types before general
// ones.
func MapException[T error](opts ...EntryOption) Option {
	key := reflect.TypeOf((*T)(nil)).Elem().String()
	return func(b *builder) {
		b.addException(key, matchAs[T], opts)
	}
}

// MapExactException registers a mapper handling only errors whose dynamic
// type is exactly T. T must be a concrete type.
func MapExactException[T error](opts ...EntryOption) Option {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return func(b *builder) {
		if t.Kind() == reflect.Interface {
			b.fail(fmt.Errorf("%w: exact match needs a concrete type, got interface %s", ErrInvalidOption, t))
			return
		}
		b.addException(t.String(), func(err error) (error, bool) {
			return err, reflect.TypeOf(err) == t
		}, opts)
	}
}

// MapSentinel registers a mapper handling errors for which errors.Is
// reports target.
func MapSentinel(target error, opts ...EntryOption) Option {
	return func(b *builder) {
		if target == nil {
			b.fail(fmt.Errorf("%w: nil sentinel", ErrInvalidOption))
			return
		}
		b.addException(fmt.Sprintf("errors.Is(%q)", target.Error()), func(err error) (error, bool) {
			return err, errors.Is(err, target)
		}, opts)
	}
}

// MapValidation registers a mapper for apis.ValidationErrorer errors. The
// status is always 400 and the "errors" extension holds the field ->
// messages map.
func MapValidation(opts ...EntryOption) Option {
	return func(b *builder) {
		b.addException("apis.ValidationErrorer", matchAs[apis.ValidationErrorer], opts, func(s *entrySettings) {
			s.force = http.StatusBadRequest
			if s.title == "" {
				s.title = validationTitle
			}
		})
	}
}

// MapResponse registers a response mapper for the given status code, or for
// every status when code is status.Any.
func MapResponse(code int, opts ...EntryOption) Option {
	return func(b *builder) {
		if !status.ValidKey(code) {
			b.fail(fmt.Errorf("%w: response status %d", ErrInvalidOption, code))
			return
		}
		b.addResponse(code, nil, opts)
	}
}

// WithExceptionMapper registers a caller-supplied exception mapper.
func WithExceptionMapper(m apis.ExceptionMapper, opts ...EntryOption) Option {
	return func(b *builder) {
		if m == nil {
			b.fail(fmt.Errorf("%w: nil exception mapper", ErrInvalidOption))
			return
		}
		b.addCustomException(m, opts)
	}
}

// WithResponseMapper registers a caller-supplied response mapper.
func WithResponseMapper(m apis.ResponseMapper, opts ...EntryOption) Option {
	return func(b *builder) {
		if m == nil {
			b.fail(fmt.Errorf("%w: nil response mapper", ErrInvalidOption))
			return
		}
		b.addResponse(0, m, opts)
	}
}

// matchAs is the hierarchy matcher. The subject is the T found in the chain.
func matchAs[T error](err error) (error, bool) {
	var target T
	if !errors.As(err, &target) {
		return nil, false
	}
	return target, true
}
