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
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"dirpx.dev/problem"
)

const maxBodyBytes = 1 << 20

type order struct {
	ID       string `json:"id"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

func (o order) validate() error {
	verr := problem.NewValidationError(nil)
	if o.ID == "" {
		verr = verr.Add("id", "must not be empty")
	}
	if o.Item == "" {
		verr = verr.Add("item", "must not be empty")
	}
	if o.Quantity <= 0 {
		verr = verr.Add("quantity", "must be positive")
	}
	if len(verr.ValidationErrors()) > 0 {
		return verr
	}
	return nil
}

// orderStore is an in-memory table reporting failures the way pgx does.
type orderStore struct {
	mu     sync.RWMutex
	orders map[string]order
}

func newOrderStore() *orderStore {
	return &orderStore{orders: make(map[string]order)}
}

func (s *orderStore) get(_ context.Context, id string) (order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return order{}, fmt.Errorf("get order %q: %w", id, pgx.ErrNoRows)
	}
	return o, nil
}

func (s *orderStore) insert(_ context.Context, o order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; ok {
		return fmt.Errorf("insert order: %w", &pgconn.PgError{
			Severity:       "ERROR",
			Code:           pgerrcode.UniqueViolation,
			Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", "orders_pkey"),
			TableName:      "orders",
			ConstraintName: "orders_pkey",
		})
	}
	s.orders[o.ID] = o
	return nil
}

// cache is the subset of a key-value client used by the demo.
type cache interface {
	Get(ctx context.Context, key string) (string, error)
}

// memoryCache is always empty.
type memoryCache struct{}

func (memoryCache) Get(context.Context, string) (string, error) { return "", redis.Nil }

func (srv *server) createOrder(w http.ResponseWriter, r *http.Request) error {
	var o order
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&o); err != nil {
		return err
	}
	if err := o.validate(); err != nil {
		return err
	}
	if err := srv.orders.insert(r.Context(), o); err != nil {
		return err
	}
	w.Header().Set("Location", "/orders/"+o.ID)
	return writeJSON(w, http.StatusCreated, o)
}

func (srv *server) getOrder(w http.ResponseWriter, r *http.Request) error {
	o, err := srv.orders.get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, o)
}

func (srv *server) getCached(w http.ResponseWriter, r *http.Request) error {
	v, err := srv.cache.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{"value": v})
}
