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

// Package adapter converts problem documents into the representations used by
// neighbouring layers: protobuf structs for gRPC status details and slog
// attributes for structured logging.
package adapter

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/problem/apis"
)

// ToStruct converts a problem document into a *structpb.Struct carrying the
// same members as its JSON form. Numbers become float64 values, as usual for
// structpb.
func ToStruct(p *apis.ProblemDetails) (*structpb.Struct, error) {
	if p == nil {
		return nil, fmt.Errorf("adapter: nil problem")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("adapter: encode problem: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("adapter: decode problem: %w", err)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("adapter: build struct: %w", err)
	}
	return s, nil
}

// FromStruct is the inverse of ToStruct. Extension values come back as
// generic JSON values (float64, string, bool, []any, map[string]any).
func FromStruct(s *structpb.Struct) (*apis.ProblemDetails, error) {
	if s == nil {
		return nil, fmt.Errorf("adapter: nil struct")
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("adapter: encode struct: %w", err)
	}
	p := &apis.ProblemDetails{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("adapter: decode struct: %w", err)
	}
	return p, nil
}

// LogAttrs returns the attributes describing a mapped result in a log
// record: status, type and title, plus instance and the number of invalid
// fields when present.
func LogAttrs(res apis.Result) []slog.Attr {
	p := res.Problem
	if p == nil {
		return []slog.Attr{slog.Int("status", res.Status)}
	}
	attrs := []slog.Attr{
		slog.Int("status", p.Status),
		slog.String("type", p.Type),
		slog.String("title", p.Title),
	}
	if p.Instance != "" {
		attrs = append(attrs, slog.String("instance", p.Instance))
	}
	if errs, ok := p.Errors(); ok {
		attrs = append(attrs, slog.Int("invalid_fields", len(errs)))
	}
	return attrs
}
