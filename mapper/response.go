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

	"dirpx.dev/problem/apis"
	"dirpx.dev/problem/status"
)

// responseMapper is the built-in apis.ResponseMapper. It is immutable and
// safe for concurrent use.
type responseMapper struct {
	cfg   *config
	entry responseEntry
}

var _ apis.ResponseMapper = (*responseMapper)(nil)

// NewResponseMapper returns a standalone response mapper for code (or for
// every status with status.Any) configured with opts. Registrations among
// opts are ignored.
func NewResponseMapper(code int, opts ...Option) (apis.ResponseMapper, error) {
	if !status.ValidKey(code) {
		return nil, fmt.Errorf("%w: response status %d", ErrInvalidOption, code)
	}
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
	return &responseMapper{cfg: cfg, entry: responseEntry{code: code}}, nil
}

// CanMap reports whether responses with the given status are handled. The
// wildcard handles every valid status.
func (m *responseMapper) CanMap(code int) bool {
	if m.entry.code == status.Any {
		return status.Valid(code)
	}
	return m.entry.code == code
}

// TryMap maps resp. It panics with ErrNilArgument when resp is nil and
// returns false when resp is not handled or the mapping panicked.
func (m *responseMapper) TryMap(resp *apis.Response) (apis.Result, bool) {
	mustResponse(resp)
	return m.tryMap(resp, nil)
}

func (m *responseMapper) tryMap(resp *apis.Response, tr *trace) (res apis.Result, ok bool) {
	if !m.CanMap(resp.StatusCode) {
		return apis.Result{}, false
	}
	defer func() {
		if p := recover(); p != nil {
			tr.add("%-11s response key=%q (panic: %v)", "declined:", status.Key(m.entry.code), p)
			res, ok = apis.Result{}, false
		}
	}()
	tr.add("%-11s response key=%q order=%d", "mapper:", status.Key(m.entry.code), m.entry.order)
	return apis.NewResult(m.build(resp, tr)), true
}

// Map maps resp. It fails with ErrNilArgument for a nil resp, with
// ErrOutOfRange when the status is not handled and with ErrMapperFailed when
// the mapping panicked.
func (m *responseMapper) Map(resp *apis.Response) (res apis.Result, err error) {
	if resp == nil {
		return apis.Result{}, fmt.Errorf("%w: nil response", ErrNilArgument)
	}
	if !m.CanMap(resp.StatusCode) {
		return apis.Result{}, fmt.Errorf("%w: status %d is not handled by %s", ErrOutOfRange, resp.StatusCode, status.Key(m.entry.code))
	}
	defer func() {
		if p := recover(); p != nil {
			res, err = apis.Result{}, fmt.Errorf("%w: %s: %v", ErrMapperFailed, status.Key(m.entry.code), p)
		}
	}()
	return apis.NewResult(m.build(resp, nil)), nil
}

// build derives every field of the problem document. Responses have no
// exception-level tier.
func (m *responseMapper) build(resp *apis.Response, tr *trace) *apis.ProblemDetails {
	cfg := m.cfg
	r := resp.Request
	actual := resp.StatusCode

	p := &apis.ProblemDetails{}

	p.Status = pickStatus(tr,
		intTier{srcContextOverride, onRequestInt(cfg.context.status, r)},
		intTier{srcResponse, constantInt(actual)},
	)

	p.Title = pickString(tr, "title",
		strTier{srcContextOverride, onRequest(cfg.context.title, r)},
		strTier{srcEntry, constant(m.entry.title)},
		strTier{srcStatusName, constant(status.Name(actual))},
	)

	p.Detail = pickString(tr, "detail",
		strTier{srcContextOverride, onRequest(cfg.context.detail, r)},
		strTier{srcTitle, constant(p.Title)},
	)

	p.Instance = pickString(tr, "instance",
		strTier{srcContextOverride, onRequest(cfg.context.instance, r)},
		strTier{srcRequestPath, constant(requestPath(r))},
	)

	statusLink, _ := status.Link(actual)
	p.Type = pickString(tr, "type",
		strTier{srcContextOverride, onRequest(cfg.context.typ, r)},
		strTier{srcStatusLink, constant(statusLink)},
		strTier{srcDefaultHelpLink, constant(cfg.defaultHelpLink)},
		strTier{srcSlug, func() string { return slugType(p.Title, actual) }},
	)

	return p
}

// mustResponse enforces the fail-fast contract of TryMap.
func mustResponse(resp *apis.Response) {
	if resp == nil {
		panic(fmt.Errorf("%w: nil response", ErrNilArgument))
	}
}
