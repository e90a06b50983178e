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

// Package config reads resolver and server settings from the environment.
//
//	s, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := mapper.New(s.Options()...)
//
// All variables use the PROBLEM_ prefix. Settings are read-only once loaded.
package config

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/caarlos0/env/v11"

	"dirpx.dev/problem/mapper"
	"dirpx.dev/problem/wellknown"
)

// Settings holds the runtime configuration.
type Settings struct {
	// Server
	Addr     string     `env:"ADDR"      envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`

	// Resolver
	DefaultHelpLink     string `env:"DEFAULT_HELP_LINK"`
	ExposeExtensions    bool   `env:"EXPOSE_EXTENSIONS"     envDefault:"true"`
	IncludeErrorDetails bool   `env:"INCLUDE_ERROR_DETAILS" envDefault:"false"`
	WellKnown           bool   `env:"WELLKNOWN"             envDefault:"true"`

	// InstanceHeader names a request header whose value becomes the problem
	// instance, e.g. X-Request-Id. Empty keeps the request path.
	InstanceHeader string `env:"INSTANCE_HEADER"`

	// Rate limiting, requests per second per client.
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"10"`
	RateBurst int     `env:"RATE_BURST" envDefault:"20"`
}

const prefix = "PROBLEM_"

// Load parses the process environment.
func Load() (*Settings, error) {
	return parse(env.Options{Prefix: prefix})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (*Settings, error) {
	return parse(env.Options{Prefix: prefix, Environment: environ})
}

func parse(opts env.Options) (*Settings, error) {
	s := &Settings{}
	if err := env.ParseWithOptions(s, opts); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if s.RateLimit < 0 || s.RateBurst < 0 {
		return nil, fmt.Errorf("config: negative rate limit")
	}
	return s, nil
}

// Options converts the settings into resolver options. Registrations passed
// to mapper.New before these win over the well-known bundle at equal order.
func (s *Settings) Options() []mapper.Option {
	opts := []mapper.Option{mapper.WithExposedExtensions(s.ExposeExtensions)}
	if s.DefaultHelpLink != "" {
		opts = append(opts, mapper.WithDefaultHelpLink(s.DefaultHelpLink))
	}
	if s.IncludeErrorDetails {
		opts = append(opts, mapper.WithIncludeErrorDetails(func(*http.Request) bool { return true }))
	}
	if h := s.InstanceHeader; h != "" {
		opts = append(opts, mapper.WithContextInstance(func(r *http.Request) string { return r.Header.Get(h) }))
	}
	if s.WellKnown {
		opts = append(opts, wellknown.All())
	}
	return opts
}
