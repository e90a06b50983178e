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

package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"dirpx.dev/problem/apis"
	"dirpx.dev/problem/config"
	"dirpx.dev/problem/httpx"
	"dirpx.dev/problem/mapper"
)

const requestTimeout = 10 * time.Second

// DivideByZeroError is returned by the /divide endpoint.
type DivideByZeroError struct{}

func (*DivideByZeroError) Error() string { return "Attempted to divide by zero." }

type server struct {
	problems *httpx.Handler
	resolver apis.Resolver
	orders   *orderStore
	cache    cache
	jwtKey   []byte
}

// newRouter builds the resolver and wires every route behind the problem
// middleware.
func newRouter(ctx context.Context, s *config.Settings, log *slog.Logger) (http.Handler, error) {
	srv, err := newServer(s, log)
	if err != nil {
		return nil, err
	}
	return srv.routes(ctx, s), nil
}

func newServer(s *config.Settings, log *slog.Logger) (*server, error) {
	opts := []mapper.Option{
		mapper.MapValidation(),
		mapper.MapException[*DivideByZeroError](mapper.DefaultStatus(http.StatusBadRequest)),
		mapper.MapException[*strconv.NumError](
			mapper.DefaultStatus(http.StatusBadRequest),
			mapper.DefaultTitle("Invalid Number"),
		),
		mapper.WithContextInstance(requestInstance),
	}
	res, err := mapper.New(append(opts, s.Options()...)...)
	if err != nil {
		return nil, fmt.Errorf("problemd: build resolver: %w", err)
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("problemd: generate signing key: %w", err)
	}

	return &server{
		problems: httpx.New(res, log),
		resolver: res,
		orders:   newOrderStore(),
		cache:    memoryCache{},
		jwtKey:   key,
	}, nil
}

func (srv *server) routes(ctx context.Context, s *config.Settings) http.Handler {
	h := srv.problems

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(requestID)
	r.Use(h.Middleware)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(rateLimit(ctx, rate.Limit(s.RateLimit), s.RateBurst))
	r.Use(chimw.CleanPath)

	r.NotFound(bare(http.StatusNotFound))
	r.MethodNotAllowed(bare(http.StatusMethodNotAllowed))

	r.Get("/divide", h.HandlerFunc(srv.divide).ServeHTTP)
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.HandlerFunc(srv.createOrder).ServeHTTP)
		r.Get("/{id}", h.HandlerFunc(srv.getOrder).ServeHTTP)
	})
	r.Get("/cache/{key}", h.HandlerFunc(srv.getCached).ServeHTTP)
	r.With(srv.authenticate).Get("/secure", srv.secure)
	r.Get("/panic", func(http.ResponseWriter, *http.Request) { panic("something went badly wrong") })
	r.Get("/debug/mappers", srv.mappers)

	return r
}

// bare writes status without a body, leaving the document to the problem
// middleware.
func bare(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(status) }
}

func (srv *server) divide(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	a, err := strconv.Atoi(q.Get("a"))
	if err != nil {
		return err
	}
	b, err := strconv.Atoi(q.Get("b"))
	if err != nil {
		return err
	}
	if b == 0 {
		return &DivideByZeroError{}
	}
	return writeJSON(w, http.StatusOK, map[string]int{"result": a / b})
}

func (srv *server) secure(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{"subject": subject(r.Context())})
}

func (srv *server) mappers(w http.ResponseWriter, _ *http.Request) {
	_ = writeJSON(w, http.StatusOK, srv.resolver.Descriptors())
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
