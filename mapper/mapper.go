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
	"sort"

	"dirpx.dev/problem/apis"
	"dirpx.dev/problem/status"
)

// New constructs an immutable apis.Resolver snapshot.
//
// The resulting Resolver is fully thread-safe and designed for long-lived
// reuse. Build process overview:
//
//  1. Apply user-provided options to a fresh builder.
//  2. Validate the collected settings (default help link, status keys,
//     nil mappers) and freeze them into a shared read-only config.
//  3. Append the default catch-all and wildcard mappers unless disabled.
//  4. Sort registrations stably by Order, keeping registration order as
//     the tie-break.
//
// Errors returned from this function wrap ErrInvalidOption.
func New(opts ...Option) (apis.Resolver, error) {
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

	if !b.noDefaults {
		b.exceptions = append(b.exceptions, defaultExceptionEntry(b.next()))
		b.responses = append(b.responses, defaultResponseEntry(b.next()))
	}

	exceptions := append([]exceptionEntry(nil), b.exceptions...)
	sort.SliceStable(exceptions, func(i, j int) bool { return exceptions[i].order < exceptions[j].order })

	responses := append([]responseEntry(nil), b.responses...)
	sort.SliceStable(responses, func(i, j int) bool { return responses[i].order < responses[j].order })

	res := &resolver{
		exceptions: make([]exceptionSlot, 0, len(exceptions)),
		responses:  make([]responseSlot, 0, len(responses)),
	}
	for _, e := range exceptions {
		m := e.custom
		if m == nil {
			m = &exceptionMapper{cfg: cfg, entry: e}
		}
		res.exceptions = append(res.exceptions, exceptionSlot{
			desc: apis.MapperDescriptor{Kind: apis.KindException, Key: e.key, Order: e.order},
			m:    m,
		})
	}
	for _, e := range responses {
		var m apis.ResponseMapper = e.custom
		key := fmt.Sprintf("%T", e.custom)
		if m == nil {
			m = &responseMapper{cfg: cfg, entry: e}
			key = status.Key(e.code)
		}
		res.responses = append(res.responses, responseSlot{
			desc: apis.MapperDescriptor{Kind: apis.KindResponse, Key: key, Order: e.order},
			m:    m,
		})
	}
	return res, nil
}

// Resolve maps err with res. Unlike TryMapError it reports a missing
// argument with ErrNilArgument and an unmapped error with ErrNoMapping.
func Resolve(res apis.Resolver, err error, r *http.Request) (apis.Result, error) {
	if res == nil || err == nil || r == nil {
		return apis.Result{}, fmt.Errorf("%w: resolve needs a resolver, an error and a request", ErrNilArgument)
	}
	if out, ok := res.TryMapError(err, r); ok {
		return out, nil
	}
	return apis.Result{}, fmt.Errorf("%w: %T", ErrNoMapping, err)
}

// ResolveResponse is the Resolve counterpart for responses.
func ResolveResponse(res apis.Resolver, resp *apis.Response) (apis.Result, error) {
	if res == nil || resp == nil {
		return apis.Result{}, fmt.Errorf("%w: resolve needs a resolver and a response", ErrNilArgument)
	}
	if out, ok := res.TryMapResponse(resp); ok {
		return out, nil
	}
	return apis.Result{}, fmt.Errorf("%w: status %d", ErrNoMapping, resp.StatusCode)
}

// resolver is the immutable apis.Resolver returned by New. Resolution is a
// linear first-match scan; collections are expected to stay small.
type resolver struct {
	exceptions []exceptionSlot
	responses  []responseSlot
}

type exceptionSlot struct {
	desc apis.MapperDescriptor
	m    apis.ExceptionMapper
}

type responseSlot struct {
	desc apis.MapperDescriptor
	m    apis.ResponseMapper
}

// TryMapError maps err with the first exception mapper that succeeds. It
// panics with ErrNilArgument when err or r is nil.
func (res *resolver) TryMapError(err error, r *http.Request) (apis.Result, bool) {
	mustException(err, r)
	for _, s := range res.exceptions {
		if out, ok := s.try(err, r, nil); ok {
			return out, true
		}
	}
	return apis.Result{}, false
}

// TryMapResponse maps resp with the first response mapper that succeeds. It
// panics with ErrNilArgument when resp is nil.
func (res *resolver) TryMapResponse(resp *apis.Response) (apis.Result, bool) {
	mustResponse(resp)
	for _, s := range res.responses {
		if out, ok := s.try(resp, nil); ok {
			return out, true
		}
	}
	return apis.Result{}, false
}

// Descriptors returns the registered mappers in resolution order: exception
// mappers first, then response mappers.
func (res *resolver) Descriptors() []apis.MapperDescriptor {
	out := make([]apis.MapperDescriptor, 0, len(res.exceptions)+len(res.responses))
	for _, s := range res.exceptions {
		out = append(out, s.desc)
	}
	for _, s := range res.responses {
		out = append(out, s.desc)
	}
	return out
}

// Explain produces a textual trace of how err is resolved for r.
//
// Example output:
//
//	error:      "division by zero" (*app.DivideByZeroError)
//	request:    GET /calc
//	mapper:     exception key="*app.DivideByZeroError" order=0
//	status:     source=fallback -> 500
//	title:      source=type-name -> "DivideByZero"
//	...
//
// Unlike TryMapError it never panics: a nil error is reported as such and a
// nil request only disables the context-level tier.
func (res *resolver) Explain(err error, r *http.Request) string {
	tr := &trace{}
	if err == nil {
		tr.add("%-11s <nil>", "error:")
		return tr.String()
	}
	tr.add("%-11s %q (%T)", "error:", err.Error(), err)
	if r != nil {
		tr.add("%-11s %s %s", "request:", r.Method, requestPath(r))
	}
	for _, s := range res.exceptions {
		if _, ok := s.try(err, r, tr); ok {
			return tr.String()
		}
	}
	tr.add("%-11s none", "mapper:")
	return tr.String()
}

// ExplainResponse produces a textual trace of how resp is resolved.
func (res *resolver) ExplainResponse(resp *apis.Response) string {
	tr := &trace{}
	if resp == nil {
		tr.add("%-11s <nil>", "response:")
		return tr.String()
	}
	tr.add("%-11s %d", "response:", resp.StatusCode)
	if resp.Request != nil {
		tr.add("%-11s %s %s", "request:", resp.Request.Method, requestPath(resp.Request))
	}
	for _, s := range res.responses {
		if _, ok := s.try(resp, tr); ok {
			return tr.String()
		}
	}
	tr.add("%-11s none", "mapper:")
	return tr.String()
}

// try runs one candidate. Panics and empty results from custom mappers are
// treated as declines.
func (s exceptionSlot) try(err error, r *http.Request, tr *trace) (out apis.Result, ok bool) {
	if m, builtin := s.m.(*exceptionMapper); builtin {
		return m.tryMap(err, r, tr)
	}
	defer func() {
		if p := recover(); p != nil {
			tr.add("%-11s exception key=%q (panic: %v)", "declined:", s.desc.Key, p)
			out, ok = apis.Result{}, false
		}
	}()
	out, ok = s.m.TryMap(err, r)
	if !ok || out.Problem == nil {
		return apis.Result{}, false
	}
	tr.add("%-11s exception key=%q order=%d (custom)", "mapper:", s.desc.Key, s.desc.Order)
	traceResult(tr, out)
	return out, true
}

func (s responseSlot) try(resp *apis.Response, tr *trace) (out apis.Result, ok bool) {
	if m, builtin := s.m.(*responseMapper); builtin {
		return m.tryMap(resp, tr)
	}
	defer func() {
		if p := recover(); p != nil {
			tr.add("%-11s response key=%q (panic: %v)", "declined:", s.desc.Key, p)
			out, ok = apis.Result{}, false
		}
	}()
	out, ok = s.m.TryMap(resp)
	if !ok || out.Problem == nil {
		return apis.Result{}, false
	}
	tr.add("%-11s response key=%q order=%d (custom)", "mapper:", s.desc.Key, s.desc.Order)
	traceResult(tr, out)
	return out, true
}

// traceResult reports the fields of a result built by a custom mapper.
func traceResult(tr *trace, out apis.Result) {
	if tr == nil {
		return
	}
	p := out.Problem
	tr.field("status", srcCustom, p.Status)
	tr.field("title", srcCustom, p.Title)
	tr.field("detail", srcCustom, p.Detail)
	tr.field("instance", srcCustom, p.Instance)
	tr.field("type", srcCustom, p.Type)
}
