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
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/problem"
	"dirpx.dev/problem/apis"
)

const helpPage = "http://www.example.com/help-page"

type DivideByZeroError struct{}

func (*DivideByZeroError) Error() string { return "Attempted to divide by zero." }

type linkError struct{ link string }

func (e *linkError) Error() string    { return "linked failure" }
func (e *linkError) HelpLink() string { return e.link }

type teapotError struct{}

func (teapotError) Error() string   { return "short and stout" }
func (teapotError) HTTPStatus() int { return http.StatusTeapot }

var errMissing = errors.New("record missing")

func request(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func mustNew(t *testing.T, opts ...Option) apis.Resolver {
	t.Helper()
	res, err := New(opts...)
	require.NoError(t, err)
	return res
}

func mapError(t *testing.T, res apis.Resolver, err error, r *http.Request) *apis.ProblemDetails {
	t.Helper()
	out, ok := res.TryMapError(err, r)
	require.True(t, ok, "error must be mapped")
	require.NotNil(t, out.Problem)
	assert.Equal(t, out.Problem.Status, out.Status)
	return out.Problem
}

func TestResolver_DivideByZero_DefaultConfig(t *testing.T) {
	res := mustNew(t)

	p := mapError(t, res, &DivideByZeroError{}, request("/calc"))

	assert.Equal(t, http.StatusInternalServerError, p.Status)
	assert.Equal(t, "DivideByZero", p.Title)
	assert.Equal(t, "Attempted to divide by zero.", p.Detail)
	assert.Equal(t, "/calc", p.Instance)
	assert.Equal(t, "error:divide-by-zero", p.Type)
	assert.Nil(t, p.Extensions)
}

func TestResolver_DivideByZero_DefaultHelpLink(t *testing.T) {
	res := mustNew(t, WithDefaultHelpLink(helpPage))

	p := mapError(t, res, &DivideByZeroError{}, request("/calc"))

	assert.Equal(t, "DivideByZero", p.Title)
	assert.Equal(t, helpPage, p.Type)
}

func TestResolver_InvalidHelpLink(t *testing.T) {
	err := &linkError{link: "invalid-link"}

	t.Run("falls back to the request path and the slug", func(t *testing.T) {
		p := mapError(t, mustNew(t), err, request("/orders/1"))
		assert.Equal(t, "/orders/1", p.Instance)
		assert.Equal(t, "Link", p.Title)
		assert.Equal(t, "error:link", p.Type)
	})

	t.Run("falls back to the default help link", func(t *testing.T) {
		p := mapError(t, mustNew(t, WithDefaultHelpLink(helpPage)), err, request("/orders/1"))
		assert.Equal(t, helpPage, p.Type)
	})

	t.Run("no path means no instance", func(t *testing.T) {
		r := request("/")
		r.URL.Path = ""
		p := mapError(t, mustNew(t), err, r)
		assert.Empty(t, p.Instance)
	})
}

func TestResolver_ValidHelpLink(t *testing.T) {
	link := "https://docs.example.com/errors/linked"
	p := mapError(t, mustNew(t, WithDefaultHelpLink(helpPage)), &linkError{link: link}, request("/x"))

	assert.Equal(t, link, p.Instance)
	assert.Equal(t, link, p.Type)
}

func TestResolver_TypedHTTPErrors(t *testing.T) {
	res := mustNew(t, WithDefaultHelpLink(helpPage))

	t.Run("declared status with a status link", func(t *testing.T) {
		p := mapError(t, res, problem.BadRequest("name is required"), request("/users"))
		assert.Equal(t, http.StatusBadRequest, p.Status)
		assert.Equal(t, "https://tools.ietf.org/html/rfc7231#section-6.5.1", p.Type)
		assert.Equal(t, "/users", p.Instance, "the status link is not a help link")
		assert.Equal(t, "Bad Request", p.Title)
		assert.Equal(t, "name is required", p.Detail)
	})

	t.Run("declared status without a status link", func(t *testing.T) {
		p := mapError(t, mustNew(t), teapotError{}, request("/brew"))
		assert.Equal(t, http.StatusTeapot, p.Status)
		assert.Equal(t, "Teapot", p.Title)
		assert.Equal(t, "/brew", p.Instance)
		assert.Equal(t, "error:teapot", p.Type)
	})

	t.Run("declared status wrapped", func(t *testing.T) {
		p := mapError(t, res, fmt.Errorf("load: %w", problem.NotFound("no such user")), request("/users/7"))
		assert.Equal(t, http.StatusNotFound, p.Status)
		assert.Equal(t, "load: no such user", p.Detail)
		assert.Equal(t, "https://tools.ietf.org/html/rfc7231#section-6.5.4", p.Type)
		assert.Equal(t, "/users/7", p.Instance)
	})

	t.Run("invalid declared status is ignored", func(t *testing.T) {
		p := mapError(t, res, problem.New(42, "odd"), request("/"))
		assert.Equal(t, http.StatusInternalServerError, p.Status)
	})
}

func TestResolver_OpaqueErrorsUseStatusName(t *testing.T) {
	res := mustNew(t)

	p := mapError(t, res, errors.New("boom"), request("/"))
	assert.Equal(t, "Internal Server Error", p.Title)
	assert.Equal(t, "boom", p.Detail)
	assert.Equal(t, "error:internal-server-error", p.Type)

	p = mapError(t, res, fmt.Errorf("outer: %w", &DivideByZeroError{}), request("/"))
	assert.Equal(t, "DivideByZero", p.Title)
}

func TestResolver_Validation(t *testing.T) {
	verr := problem.NewValidationError(map[string][]string{
		"memberName1": {"error1", "error2"},
		"memberName2": {"error1", "error2"},
	})

	for name, res := range map[string]apis.Resolver{
		"dedicated mapper": mustNew(t, MapValidation()),
		"catch-all":        mustNew(t),
	} {
		t.Run(name, func(t *testing.T) {
			p := mapError(t, res, verr, request("/products"))

			assert.Equal(t, http.StatusBadRequest, p.Status)
			assert.Equal(t, "https://tools.ietf.org/html/rfc7231#section-6.5.1", p.Type)

			errs, ok := p.Errors()
			require.True(t, ok)
			require.Len(t, errs, 2)
			assert.Equal(t, []string{"error1", "error2"}, errs["memberName1"])
			assert.Equal(t, []string{"error1", "error2"}, errs["memberName2"])
		})
	}
}

func TestResolver_ValidationDuplicatesPreserved(t *testing.T) {
	p := mapError(t, mustNew(t, MapValidation()), problem.Invalid("param", "error1", "error1"), request("/"))

	errs, ok := p.Errors()
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"error1", "error1"}, errs["param"])
	assert.Equal(t, validationTitle, p.Title)
}

type formErrors map[string][]string

func (f formErrors) Error() string                         { return "form is invalid" }
func (f formErrors) ValidationErrors() map[string][]string { return f }

func TestResolver_ValidationForcesBadRequest(t *testing.T) {
	err := formErrors{"email": {"must contain @"}}

	p := mapError(t, mustNew(t, MapValidation()), err, request("/signup"))
	assert.Equal(t, http.StatusBadRequest, p.Status)
	assert.Equal(t, "https://tools.ietf.org/html/rfc7231#section-6.5.1", p.Type)

	p = mapError(t, mustNew(t), err, request("/signup"))
	assert.Equal(t, http.StatusInternalServerError, p.Status)
	errs, ok := p.Errors()
	require.True(t, ok)
	assert.Equal(t, []string{"must contain @"}, errs["email"])
}

func TestResolver_TypedNilValidationError(t *testing.T) {
	var verr *problem.ValidationError

	for name, res := range map[string]apis.Resolver{
		"dedicated mapper": mustNew(t, MapValidation()),
		"catch-all":        mustNew(t),
	} {
		t.Run(name, func(t *testing.T) {
			p := mapError(t, res, verr, request("/signup"))
			assert.Equal(t, http.StatusBadRequest, p.Status)
			assert.Equal(t, "/signup", p.Instance)
		})
	}
}

func TestResolver_Hierarchy(t *testing.T) {
	res := mustNew(t,
		MapException[*DivideByZeroError](DefaultStatus(http.StatusUnprocessableEntity)),
		MapException[apis.StatusCoder](DefaultTitle("Declared")),
	)

	p := mapError(t, res, fmt.Errorf("calc: %w", &DivideByZeroError{}), request("/calc"))
	assert.Equal(t, http.StatusUnprocessableEntity, p.Status)
	assert.Equal(t, "DivideByZero", p.Title)
	assert.Equal(t, "calc: Attempted to divide by zero.", p.Detail)

	p = mapError(t, res, teapotError{}, request("/"))
	assert.Equal(t, "Declared", p.Title)
	assert.Equal(t, http.StatusTeapot, p.Status)
}

func TestResolver_ExactType(t *testing.T) {
	res := mustNew(t, MapExactException[*DivideByZeroError](DefaultStatus(http.StatusUnprocessableEntity)))

	p := mapError(t, res, &DivideByZeroError{}, request("/"))
	assert.Equal(t, http.StatusUnprocessableEntity, p.Status)

	p = mapError(t, res, fmt.Errorf("wrapped: %w", &DivideByZeroError{}), request("/"))
	assert.Equal(t, http.StatusInternalServerError, p.Status, "wrapped errors fall through to the catch-all")

	_, err := New(MapExactException[apis.StatusCoder]())
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestResolver_Sentinel(t *testing.T) {
	res := mustNew(t, MapSentinel(errMissing, DefaultStatus(http.StatusNotFound), DefaultTitle("Resource Not Found")))

	p := mapError(t, res, fmt.Errorf("find order 7: %w", errMissing), request("/orders/7"))
	assert.Equal(t, http.StatusNotFound, p.Status)
	assert.Equal(t, "Resource Not Found", p.Title)
	assert.Equal(t, "error:resource-not-found", p.Type)
	assert.Equal(t, "find order 7: record missing", p.Detail)
}

func TestResolver_StatusFrom(t *testing.T) {
	res := mustNew(t, MapSentinel(errMissing,
		StatusFrom(func(error) int { return http.StatusGone }),
		DefaultStatus(http.StatusNotFound),
	))
	assert.Equal(t, http.StatusGone, mapError(t, res, errMissing, request("/")).Status)

	res = mustNew(t, MapSentinel(errMissing,
		StatusFrom(func(error) int { return 0 }),
		DefaultStatus(http.StatusNotFound),
	))
	assert.Equal(t, http.StatusNotFound, mapError(t, res, errMissing, request("/")).Status)
}

func TestResolver_OrderAndTieBreak(t *testing.T) {
	res := mustNew(t,
		MapException[*DivideByZeroError](DefaultTitle("first")),
		MapException[*DivideByZeroError](DefaultTitle("second")),
	)
	assert.Equal(t, "first", mapError(t, res, &DivideByZeroError{}, request("/")).Title)

	res = mustNew(t,
		MapException[*DivideByZeroError](DefaultTitle("first")),
		MapException[*DivideByZeroError](DefaultTitle("priority"), Order(-1)),
	)
	assert.Equal(t, "priority", mapError(t, res, &DivideByZeroError{}, request("/")).Title)

	got := res.Descriptors()
	require.Len(t, got, 4)
	assert.Equal(t, apis.MapperDescriptor{Kind: apis.KindException, Key: "*mapper.DivideByZeroError", Order: -1}, got[0])
	assert.Equal(t, apis.MapperDescriptor{Kind: apis.KindException, Key: "*mapper.DivideByZeroError", Order: 0}, got[1])
	assert.Equal(t, apis.MapperDescriptor{Kind: apis.KindException, Key: "error", Order: lastOrder}, got[2])
	assert.Equal(t, apis.MapperDescriptor{Kind: apis.KindResponse, Key: "*", Order: lastOrder}, got[3])
}

type panicMapper struct{}

func (panicMapper) CanMap(error, *http.Request) bool { return true }
func (panicMapper) TryMap(error, *http.Request) (apis.Result, bool) {
	panic("mapper bug")
}
func (panicMapper) Map(error, *http.Request) (apis.Result, error) {
	panic("mapper bug")
}

func TestResolver_PanickingMapperDeclines(t *testing.T) {
	res := mustNew(t, WithExceptionMapper(panicMapper{}))
	p := mapError(t, res, &DivideByZeroError{}, request("/"))
	assert.Equal(t, "DivideByZero", p.Title)

	res = mustNew(t,
		WithExceptionTitle(func(error) string { panic("override bug") }),
	)
	_, ok := res.TryMapError(&DivideByZeroError{}, request("/"))
	assert.False(t, ok, "the built-in mapper declines when an override panics")
}

type staticMapper struct{ result apis.Result }

func (m staticMapper) CanMap(error, *http.Request) bool { return true }
func (m staticMapper) TryMap(error, *http.Request) (apis.Result, bool) {
	return m.result, true
}
func (m staticMapper) Map(error, *http.Request) (apis.Result, error) { return m.result, nil }

func TestResolver_CustomMapper(t *testing.T) {
	custom := apis.NewResult(&apis.ProblemDetails{Status: 418, Type: "urn:tea", Title: "Tea"})
	res := mustNew(t, WithExceptionMapper(staticMapper{result: custom}))

	out, ok := res.TryMapError(errors.New("x"), request("/"))
	require.True(t, ok)
	assert.Equal(t, custom, out)

	res = mustNew(t, WithExceptionMapper(staticMapper{}), WithoutDefaultMappers())
	_, ok = res.TryMapError(errors.New("x"), request("/"))
	assert.False(t, ok, "an empty result counts as a decline")
}

func TestResolver_WithoutDefaultMappers(t *testing.T) {
	res := mustNew(t, WithoutDefaultMappers(), MapSentinel(errMissing))

	_, ok := res.TryMapError(errors.New("other"), request("/"))
	assert.False(t, ok)
	_, ok = res.TryMapError(errMissing, request("/"))
	assert.True(t, ok)

	_, err := Resolve(res, errors.New("other"), request("/"))
	assert.ErrorIs(t, err, ErrNoMapping)

	_, ok = res.TryMapResponse(&apis.Response{StatusCode: http.StatusUnauthorized})
	assert.False(t, ok)
	_, err = ResolveResponse(res, &apis.Response{StatusCode: http.StatusUnauthorized})
	assert.ErrorIs(t, err, ErrNoMapping)
}

func TestResolver_NilArguments(t *testing.T) {
	res := mustNew(t)

	assert.Panics(t, func() { res.TryMapError(nil, request("/")) })
	assert.Panics(t, func() { res.TryMapError(errors.New("x"), nil) })
	assert.Panics(t, func() { res.TryMapResponse(nil) })

	_, err := Resolve(res, nil, request("/"))
	assert.ErrorIs(t, err, ErrNilArgument)
	_, err = Resolve(res, errors.New("x"), nil)
	assert.ErrorIs(t, err, ErrNilArgument)
	_, err = ResolveResponse(res, nil)
	assert.ErrorIs(t, err, ErrNilArgument)
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := map[string]Option{
		"relative help link": WithDefaultHelpLink("invalid-link"),
		"bad response key":   MapResponse(42),
		"nil mapper":         WithExceptionMapper(nil),
		"nil response":       WithResponseMapper(nil),
		"nil sentinel":       MapSentinel(nil),
	}
	for name, opt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(opt)
			assert.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestResolver_Idempotent(t *testing.T) {
	res := mustNew(t, WithDefaultHelpLink(helpPage))
	err := fmt.Errorf("calc: %w", &DivideByZeroError{})
	r := request("/calc")

	first, ok := res.TryMapError(err, r)
	require.True(t, ok)
	second, ok := res.TryMapError(err, r)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.NotSame(t, first.Problem, second.Problem, "every mapping builds a fresh document")
}

func TestResolver_Concurrent(t *testing.T) {
	res := mustNew(t, MapValidation(), MapSentinel(errMissing, DefaultStatus(http.StatusNotFound)))

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			switch i % 3 {
			case 0:
				err = errMissing
			case 1:
				err = problem.Invalid("name", "required")
			default:
				err = &DivideByZeroError{}
			}
			out, ok := res.TryMapError(err, request("/concurrent"))
			assert.True(t, ok)
			assert.Equal(t, "/concurrent", out.Problem.Instance)
		}(i)
	}
	wg.Wait()
}

func TestResolver_EntryTitleAndDetailFrom(t *testing.T) {
	res := mustNew(t, Bundle(
		MapSentinel(errMissing,
			TitleFrom(func(error) string { return "Gone Missing" }),
			DefaultTitle("unused"),
			DetailFrom(func(error) string { return "The record does not exist." }),
		),
	))

	p := mapError(t, res, errMissing, request("/"))
	assert.Equal(t, "Gone Missing", p.Title)
	assert.Equal(t, "The record does not exist.", p.Detail)
	assert.Equal(t, "error:gone-missing", p.Type)
}
