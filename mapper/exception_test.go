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
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/problem"
	"dirpx.dev/problem/apis"
)

func TestExceptionMapper_OutOfRange(t *testing.T) {
	m, err := NewExceptionMapper[*DivideByZeroError]()
	require.NoError(t, err)

	other := errors.New("unrelated")
	assert.False(t, m.CanMap(other, request("/")))
	_, ok := m.TryMap(other, request("/"))
	assert.False(t, ok)

	_, err = m.Map(other, request("/"))
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.True(t, m.CanMap(fmt.Errorf("wrapped: %w", &DivideByZeroError{}), request("/")))
	out, err := m.Map(&DivideByZeroError{}, request("/calc"))
	require.NoError(t, err)
	assert.Equal(t, "DivideByZero", out.Problem.Title)
}

func TestExceptionMapper_NilArguments(t *testing.T) {
	m, err := NewExceptionMapper[error]()
	require.NoError(t, err)

	_, err = m.Map(nil, request("/"))
	assert.ErrorIs(t, err, ErrNilArgument)
	_, err = m.Map(errors.New("x"), nil)
	assert.ErrorIs(t, err, ErrNilArgument)

	assert.Panics(t, func() { m.TryMap(nil, request("/")) })
	assert.Panics(t, func() { m.TryMap(errors.New("x"), nil) })
	assert.False(t, m.CanMap(nil, request("/")))
}

func TestExceptionMapper_MapReportsPanics(t *testing.T) {
	m, err := NewExceptionMapper[error](WithExceptionDetail(func(error) string { panic("bug") }))
	require.NoError(t, err)

	_, err = m.Map(errors.New("x"), request("/"))
	assert.ErrorIs(t, err, ErrMapperFailed)
}

func TestExceptionMapper_InvalidOption(t *testing.T) {
	_, err := NewExceptionMapper[error](WithDefaultHelpLink("nope"))
	assert.ErrorIs(t, err, ErrInvalidOption)
}

// overrideCase describes one field: how to install both override tiers and
// how to read the field back.
type overrideCase struct {
	exception Option
	context   Option
	read      func(*apis.ProblemDetails) any
	exc, ctx  any
}

func overrideCases() map[string]overrideCase {
	return map[string]overrideCase{
		"status": {
			exception: WithExceptionStatus(func(error) int { return http.StatusConflict }),
			context:   WithContextStatus(func(*http.Request) int { return http.StatusTeapot }),
			read:      func(p *apis.ProblemDetails) any { return p.Status },
			exc:       http.StatusConflict,
			ctx:       http.StatusTeapot,
		},
		"type": {
			exception: WithExceptionType(func(error) string { return "https://example.com/ExceptionTypeMapping" }),
			context:   WithContextType(func(*http.Request) string { return "https://example.com/ContextTypeMapping" }),
			read:      func(p *apis.ProblemDetails) any { return p.Type },
			exc:       "https://example.com/ExceptionTypeMapping",
			ctx:       "https://example.com/ContextTypeMapping",
		},
		"title": {
			exception: WithExceptionTitle(func(error) string { return "ExceptionTitleMapping" }),
			context:   WithContextTitle(func(*http.Request) string { return "ContextTitleMapping" }),
			read:      func(p *apis.ProblemDetails) any { return p.Title },
			exc:       "ExceptionTitleMapping",
			ctx:       "ContextTitleMapping",
		},
		"detail": {
			exception: WithExceptionDetail(func(error) string { return "ExceptionDetailMapping" }),
			context:   WithContextDetail(func(*http.Request) string { return "ContextDetailMapping" }),
			read:      func(p *apis.ProblemDetails) any { return p.Detail },
			exc:       "ExceptionDetailMapping",
			ctx:       "ContextDetailMapping",
		},
		"instance": {
			exception: WithExceptionInstance(func(error) string { return "https://example.com/ExceptionInstanceMapping" }),
			context:   WithContextInstance(func(*http.Request) string { return "/context/instance" }),
			read:      func(p *apis.ProblemDetails) any { return p.Instance },
			exc:       "https://example.com/ExceptionInstanceMapping",
			ctx:       "/context/instance",
		},
	}
}

func TestOverrides_Precedence(t *testing.T) {
	err := &DivideByZeroError{}

	for field, tc := range overrideCases() {
		t.Run(field+"/context only", func(t *testing.T) {
			p := mapError(t, mustNew(t, tc.context), err, request("/calc"))
			assert.Equal(t, tc.ctx, tc.read(p))
		})
		t.Run(field+"/exception and context", func(t *testing.T) {
			p := mapError(t, mustNew(t, tc.context, tc.exception), err, request("/calc"))
			assert.Equal(t, tc.exc, tc.read(p))
		})
		t.Run(field+"/exception only", func(t *testing.T) {
			p := mapError(t, mustNew(t, tc.exception), err, request("/calc"))
			assert.Equal(t, tc.exc, tc.read(p))
		})
	}
}

func TestOverrides_EmptyValuesAreSkipped(t *testing.T) {
	res := mustNew(t,
		WithExceptionTitle(func(error) string { return "" }),
		WithContextTitle(func(*http.Request) string { return "" }),
		WithExceptionStatus(func(error) int { return 9999999 }),
		WithContextStatus(func(*http.Request) int { return 0 }),
	)

	p := mapError(t, res, &DivideByZeroError{}, request("/calc"))
	assert.Equal(t, "DivideByZero", p.Title)
	assert.Equal(t, http.StatusInternalServerError, p.Status)
}

func TestOverrides_TitleFeedsDetailAndSlug(t *testing.T) {
	res := mustNew(t,
		WithExceptionTitle(func(error) string { return "Quota Exceeded" }),
		WithExceptionDetail(func(error) string { return "" }),
	)

	p := mapError(t, res, &DivideByZeroError{}, request("/"))
	assert.Equal(t, "Attempted to divide by zero.", p.Detail)
	assert.Equal(t, "error:quota-exceeded", p.Type)
}

func TestOverrides_ReceiveArguments(t *testing.T) {
	var gotErr error
	var gotPath string
	res := mustNew(t,
		WithExceptionDetail(func(err error) string {
			gotErr = err
			return ""
		}),
		WithContextDetail(func(r *http.Request) string {
			gotPath = r.URL.Path
			return ""
		}),
	)

	err := &DivideByZeroError{}
	mapError(t, res, err, request("/calc"))
	assert.Same(t, err, gotErr)
	assert.Equal(t, "/calc", gotPath)
}

type quotaError struct {
	Limit   int
	Used    int64
	Window  time.Duration
	Tags    []string
	Owner   *string
	Status  int
	Secret  string
	Message string
}

func (e *quotaError) Error() string { return e.Message }

func (e *quotaError) ProblemExtensions() []apis.Field {
	return []apis.Field{
		apis.F("Limit", e.Limit),
		apis.F("Used", e.Used),
		apis.F("Window", e.Window),
		apis.F("Tags", e.Tags),
		apis.F("Owner", e.Owner),
		apis.F("Status", e.Status),
	}
}

func TestExtensions_OnlyExposedScalars(t *testing.T) {
	err := &quotaError{
		Limit: 10, Used: 12, Window: time.Minute,
		Tags: []string{"a"}, Status: 999, Secret: "s3cr3t", Message: "quota exceeded",
	}

	p := mapError(t, mustNew(t), err, request("/"))

	assert.Equal(t, map[string]any{
		"limit":  10,
		"used":   int64(12),
		"window": time.Minute,
	}, p.Extensions)
	assert.Equal(t, http.StatusInternalServerError, p.Status, "reserved names never overwrite members")
}

func TestExtensions_SkipsNonFiniteFloats(t *testing.T) {
	err := problem.Conflict("bad ratio",
		problem.WithFieldOption("Ratio", math.NaN()),
		problem.WithFieldOption("Ceiling", math.Inf(1)),
		problem.WithFieldOption("Floor", float32(math.Inf(-1))),
		problem.WithFieldOption("Share", 0.5),
	)

	p := mapError(t, mustNew(t), err, request("/"))
	assert.Equal(t, map[string]any{"share": 0.5}, p.Extensions)

	_, jerr := json.Marshal(p)
	assert.NoError(t, jerr)
}

func TestExtensions_Disabled(t *testing.T) {
	p := mapError(t, mustNew(t, WithExposedExtensions(false)), &quotaError{Limit: 1}, request("/"))
	assert.Nil(t, p.Extensions)
}

func TestExtensions_ThroughWrapAndTypedErrors(t *testing.T) {
	err := fmt.Errorf("charge: %w",
		problem.TooManyRequests("slow down", problem.WithFieldOption("RetryAfter", 30)))

	p := mapError(t, mustNew(t), err, request("/"))
	assert.Equal(t, http.StatusTooManyRequests, p.Status)
	assert.Equal(t, 30, p.Extensions["retryAfter"])
}

func TestErrorDetails(t *testing.T) {
	root := errors.New("disk full")
	err := fmt.Errorf("save: %w", problem.Internal("write failed", problem.WithCauseOption(root)))

	res := mustNew(t, WithIncludeErrorDetails(func(r *http.Request) bool {
		return strings.HasPrefix(r.URL.Path, "/debug")
	}))

	p := mapError(t, res, err, request("/debug/save"))
	d, ok := p.ErrorDetails()
	require.True(t, ok)
	assert.Equal(t, "*fmt.wrapError", d.Type)
	assert.Equal(t, "save: write failed", d.Message)
	assert.Equal(t, []string{"write failed", "disk full"}, d.Causes)

	p = mapError(t, res, err, request("/save"))
	_, ok = p.ErrorDetails()
	assert.False(t, ok)
}
