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
	"net/http"
	"reflect"

	"dirpx.dev/problem/apis"
	"dirpx.dev/problem/status"
)

// exceptionMapper is the built-in apis.ExceptionMapper. It is immutable and
// safe for concurrent use.
type exceptionMapper struct {
	cfg   *config
	entry exceptionEntry
}

var _ apis.ExceptionMapper = (*exceptionMapper)(nil)

// NewExceptionMapper returns a standalone hierarchy mapper for T configured
// with opts. Registrations among opts are ignored; only the field overrides
// and global settings apply.
func NewExceptionMapper[T error](opts ...Option) (apis.ExceptionMapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	cfg, err := b.freeze()
	if err != nil {
		return nil, err
	}
	e := exceptionEntry{key: reflect.TypeOf((*T)(nil)).Elem().String(), match: matchAs[T]}
	return &exceptionMapper{cfg: cfg, entry: e}, nil
}

// CanMap reports whether err is handled by this mapper.
func (m *exceptionMapper) CanMap(err error, _ *http.Request) bool {
	if err == nil {
		return false
	}
	_, ok := m.entry.match(err)
	return ok
}

// TryMap maps err. It panics with ErrNilArgument when err or r is nil and
// returns false when err is not handled or the mapping panicked.
func (m *exceptionMapper) TryMap(err error, r *http.Request) (apis.Result, bool) {
	mustException(err, r)
	return m.tryMap(err, r, nil)
}

func (m *exceptionMapper) tryMap(err error, r *http.Request, tr *trace) (res apis.Result, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			tr.add("%-11s exception key=%q (panic: %v)", "declined:", m.entry.key, p)
			res, ok = apis.Result{}, false
		}
	}()
	subject, matched := m.entry.match(err)
	if !matched {
		return apis.Result{}, false
	}
	tr.add("%-11s exception key=%q order=%d", "mapper:", m.entry.key, m.entry.order)
	return apis.NewResult(m.build(err, subject, r, tr)), true
}

// Map maps err. It fails with ErrNilArgument for a nil err or r, with
// ErrOutOfRange when err is not handled and with ErrMapperFailed when the
// mapping panicked.
func (m *exceptionMapper) Map(err error, r *http.Request) (res apis.Result, mapErr error) {
	if err == nil || r == nil {
		return apis.Result{}, fmt.Errorf("%w: exception mapper needs an error and a request", ErrNilArgument)
	}
	defer func() {
		if p := recover(); p != nil {
			res, mapErr = apis.Result{}, fmt.Errorf("%w: %s: %v", ErrMapperFailed, m.entry.key, p)
		}
	}()
	subject, ok := m.entry.match(err)
	if !ok {
		return apis.Result{}, fmt.Errorf("%w: %T is not handled by %s", ErrOutOfRange, err, m.entry.key)
	}
	return apis.NewResult(m.build(err, subject, r, nil)), nil
}

// build derives every field of the problem document.
func (m *exceptionMapper) build(err, subject error, r *http.Request, tr *trace) *apis.ProblemDetails {
	cfg := m.cfg
	declared := declaredStatus(err)

	p := &apis.ProblemDetails{}

	p.Status = pickStatus(tr,
		intTier{srcExceptionOverride, onErrorInt(cfg.exception.status, err)},
		intTier{srcContextOverride, onRequestInt(cfg.context.status, r)},
		intTier{srcValidation, constantInt(m.entry.force)},
		intTier{srcDeclared, constantInt(declared)},
		intTier{srcEntry, onErrorInt(m.entry.statusFrom, err)},
		intTier{srcEntry, constantInt(m.entry.status)},
	)

	p.Title = pickString(tr, "title",
		strTier{srcExceptionOverride, onError(cfg.exception.title, err)},
		strTier{srcContextOverride, onRequest(cfg.context.title, r)},
		strTier{srcEntry, onError(m.entry.titleFrom, err)},
		strTier{srcEntry, constant(m.entry.title)},
		strTier{srcTypeName, func() string { return typeTitle(subject) }},
		strTier{srcStatusName, constant(status.Name(p.Status))},
	)

	p.Detail = pickString(tr, "detail",
		strTier{srcExceptionOverride, onError(cfg.exception.detail, err)},
		strTier{srcContextOverride, onRequest(cfg.context.detail, r)},
		strTier{srcEntry, onError(m.entry.detailFrom, err)},
		strTier{srcMessage, err.Error},
		strTier{srcTitle, constant(p.Title)},
	)

	link, raw := helpLink(err)
	if raw != "" && link == "" {
		tr.add("%-11s %q is not an absolute URI", "help-link:", raw)
	}

	p.Instance = pickString(tr, "instance",
		strTier{srcExceptionOverride, onError(cfg.exception.instance, err)},
		strTier{srcContextOverride, onRequest(cfg.context.instance, r)},
		strTier{srcHelpLink, constant(link)},
		strTier{srcRequestPath, constant(requestPath(r))},
	)

	var statusLink string
	if declared != 0 || m.entry.force != 0 {
		statusLink, _ = status.Link(p.Status)
	}

	p.Type = pickString(tr, "type",
		strTier{srcExceptionOverride, onError(cfg.exception.typ, err)},
		strTier{srcContextOverride, onRequest(cfg.context.typ, r)},
		strTier{srcHelpLink, constant(link)},
		strTier{srcStatusLink, constant(statusLink)},
		strTier{srcDefaultHelpLink, constant(cfg.defaultHelpLink)},
		strTier{srcSlug, func() string { return slugType(p.Title, p.Status) }},
	)

	p.Extensions = cfg.extensions(err, r, tr)
	return p
}

// mustException enforces the fail-fast contract of TryMap.
func mustException(err error, r *http.Request) {
	if err == nil {
		panic(fmt.Errorf("%w: nil error", ErrNilArgument))
	}
	if r == nil {
		panic(fmt.Errorf("%w: nil request", ErrNilArgument))
	}
}
