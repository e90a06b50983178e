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

// Package httpx plugs a problem resolver into net/http.
//
// A Handler provides three entry points:
//
//   - Middleware recovers panics and turns empty-bodied error responses
//     (e.g. a bare 401 written by an auth middleware) into problem documents;
//   - HandlerFunc adapts handlers returning an error;
//   - HandleError maps and writes a single error.
//
// Errors and responses the resolver does not map are passed through: a
// panic is re-raised, a bare status is written as is, and a returned error
// becomes a plain 500.
package httpx

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"

	"dirpx.dev/problem/adapter"
	"dirpx.dev/problem/apis"
)

// Handler writes problem documents for a Resolver.
type Handler struct {
	// Resolver maps errors and responses. Required.
	Resolver apis.Resolver

	// Logger receives one record per mapped error. Defaults to slog.Default().
	Logger *slog.Logger

	// ShouldLog filters logged errors. Nil logs everything.
	ShouldLog func(error) bool

	// IsErrorResponse decides whether an empty-bodied response with the given
	// status is mapped. Nil maps every status >= 400.
	IsErrorResponse func(r *http.Request, status int) bool
}

// New returns a Handler with the default policies.
func New(res apis.Resolver, logger *slog.Logger) *Handler {
	return &Handler{Resolver: res, Logger: logger}
}

// PanicError wraps a value recovered from a panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return "recovered from panic" }

// Unwrap exposes a panicked error value to errors.Is / errors.As.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// ErrEncode reports a result that could not be serialized. Write has not
// touched the response when it returns an error wrapping ErrEncode.
var ErrEncode = errors.New("httpx: cannot encode problem")

// Write serializes res as application/problem+json.
func Write(w http.ResponseWriter, res apis.Result) error {
	if res.Problem == nil {
		return fmt.Errorf("%w: empty result", ErrEncode)
	}
	body, err := json.Marshal(res.Problem)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	h := w.Header()
	h.Set("Content-Type", apis.ContentType)
	h.Set("X-Content-Type-Options", "nosniff")
	h.Del("Content-Length")
	w.WriteHeader(res.StatusCode())
	_, err = w.Write(body)
	return err
}

// Middleware wraps next with panic recovery and empty-response mapping.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &recorder{ResponseWriter: w, h: h, r: r}

		defer func() {
			v := recover()
			if v == nil {
				rec.finish()
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			perr := &PanicError{Value: v, Stack: debug.Stack()}
			if rec.wroteHeader {
				h.logger().LogAttrs(r.Context(), slog.LevelError, "panic after response was committed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", v),
					slog.String("stack", string(perr.Stack)),
				)
				panic(http.ErrAbortHandler)
			}

			rec.pending = 0
			if !h.HandleError(rec.ResponseWriter, r, perr) {
				panic(v)
			}
		}()

		next.ServeHTTP(rec, r)
	})
}

// HandlerFunc adapts fn to http.Handler. A returned error is mapped and
// written unless a response body was already sent; unmapped errors become a
// plain 500.
func (h *Handler) HandlerFunc(fn func(http.ResponseWriter, *http.Request) error) http.Handler {
	return h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		if rec, ok := w.(*recorder); ok && rec.wroteHeader {
			h.log(r, err, apis.Result{Status: rec.status})
			return
		}
		if !h.HandleError(w, r, err) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}))
}

// HandleError maps err and writes the problem document. It returns false,
// writing nothing, when the resolver does not map err or the document cannot
// be encoded.
func (h *Handler) HandleError(w http.ResponseWriter, r *http.Request, err error) bool {
	res, ok := h.Resolver.TryMapError(err, r)
	if !ok {
		h.log(r, err, apis.Result{Status: http.StatusInternalServerError})
		return false
	}
	h.log(r, err, res)
	if werr := Write(w, res); werr != nil {
		h.logger().LogAttrs(r.Context(), slog.LevelWarn, "write problem failed", slog.String("error", werr.Error()))
		if errors.Is(werr, ErrEncode) {
			return false
		}
	}
	return true
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// log records a mapped error: 5xx at Error, 4xx at Warn, anything else at
// Info.
func (h *Handler) log(r *http.Request, err error, res apis.Result) {
	if h.ShouldLog != nil && !h.ShouldLog(err) {
		return
	}
	level := slog.LevelInfo
	switch {
	case res.Status >= 500:
		level = slog.LevelError
	case res.Status >= 400:
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	}
	attrs = append(attrs, adapter.LogAttrs(res)...)

	var perr *PanicError
	if errors.As(err, &perr) {
		attrs = append(attrs, slog.Any("panic", perr.Value), slog.String("stack", string(perr.Stack)))
	}
	h.logger().LogAttrs(r.Context(), level, "request failed", attrs...)
}

func (h *Handler) isErrorResponse(r *http.Request, code int) bool {
	if code < 400 {
		return false
	}
	if h.IsErrorResponse != nil {
		return h.IsErrorResponse(r, code)
	}
	return true
}

// recorder defers error status codes until it is known whether a body
// follows. A bodiless error response is mapped by finish.
type recorder struct {
	http.ResponseWriter
	h *Handler
	r *http.Request

	// pending is a deferred error status, 0 when none.
	pending int
	// status is the status actually written.
	status      int
	wroteHeader bool
}

func (rec *recorder) WriteHeader(code int) {
	if rec.wroteHeader {
		return
	}
	if code < 200 {
		rec.ResponseWriter.WriteHeader(code)
		return
	}
	if rec.h.isErrorResponse(rec.r, code) {
		rec.pending = code
		return
	}
	rec.pending = 0
	rec.commit(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	if !rec.wroteHeader {
		if len(b) == 0 {
			return 0, nil
		}
		code := rec.pending
		if code == 0 {
			code = http.StatusOK
		}
		rec.pending = 0
		rec.commit(code)
	}
	return rec.ResponseWriter.Write(b)
}

// Flush commits a deferred status before flushing.
func (rec *recorder) Flush() {
	if !rec.wroteHeader && rec.pending != 0 {
		code := rec.pending
		rec.pending = 0
		rec.commit(code)
	}
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack hands the connection over when the underlying writer supports it,
// e.g. for a websocket upgrade. A deferred status is dropped and nothing is
// written afterwards.
func (rec *recorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rec.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("httpx: %T cannot hijack: %w", rec.ResponseWriter, http.ErrNotSupported)
	}
	conn, rw, err := hj.Hijack()
	if err != nil {
		return nil, nil, err
	}
	rec.pending = 0
	rec.wroteHeader = true
	return conn, rw, nil
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *recorder) Unwrap() http.ResponseWriter { return rec.ResponseWriter }

func (rec *recorder) commit(code int) {
	rec.wroteHeader = true
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// finish maps a deferred bodiless error response.
func (rec *recorder) finish() {
	if rec.wroteHeader || rec.pending == 0 {
		return
	}
	code := rec.pending
	rec.pending = 0

	resp := &apis.Response{StatusCode: code, Request: rec.r, Header: rec.ResponseWriter.Header()}
	res, ok := rec.h.Resolver.TryMapResponse(resp)
	if !ok {
		rec.commit(code)
		return
	}
	rec.h.logger().LogAttrs(rec.r.Context(), slog.LevelDebug, "empty response mapped",
		append([]slog.Attr{slog.String("method", rec.r.Method), slog.String("path", rec.r.URL.Path)}, adapter.LogAttrs(res)...)...)
	if err := Write(rec.ResponseWriter, res); err != nil {
		rec.h.logger().LogAttrs(rec.r.Context(), slog.LevelWarn, "write problem failed", slog.String("error", err.Error()))
		if errors.Is(err, ErrEncode) {
			rec.commit(code)
			return
		}
	}
	rec.wroteHeader = true
	rec.status = res.StatusCode()
}
