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

// Package grpcx exposes a problem resolver to gRPC servers.
//
// Handler errors are mapped through the resolver and returned as gRPC status
// errors whose message is the problem detail. The full problem document is
// attached as a google.protobuf.Struct status detail and can be read back with
// ExtractProblem.
//
// The resolver works on HTTP requests, so the interceptors synthesize one: a
// POST whose path is the full method name ("/pkg.Service/Method") and whose
// headers are the incoming metadata.
package grpcx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/problem/adapter"
	"dirpx.dev/problem/apis"
)

// UnaryServerInterceptor maps errors returned by unary handlers.
// Errors already carrying a gRPC status are returned as is. A nil logger
// disables logging.
func UnaryServerInterceptor(res apis.Resolver, logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, toStatus(ctx, res, logger, info.FullMethod, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(res apis.Resolver, logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return toStatus(ss.Context(), res, logger, info.FullMethod, err)
	}
}

// Code converts an HTTP status into the closest gRPC code.
func Code(httpStatus int) gcodes.Code {
	switch httpStatus {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return gcodes.InvalidArgument
	case http.StatusUnauthorized:
		return gcodes.Unauthenticated
	case http.StatusForbidden:
		return gcodes.PermissionDenied
	case http.StatusNotFound, http.StatusGone:
		return gcodes.NotFound
	case http.StatusConflict:
		return gcodes.Aborted
	case http.StatusPreconditionFailed, http.StatusPreconditionRequired:
		return gcodes.FailedPrecondition
	case http.StatusRequestEntityTooLarge, http.StatusTooManyRequests:
		return gcodes.ResourceExhausted
	case http.StatusRequestedRangeNotSatisfiable:
		return gcodes.OutOfRange
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return gcodes.DeadlineExceeded
	case 499:
		return gcodes.Canceled
	case http.StatusNotImplemented, http.StatusMethodNotAllowed:
		return gcodes.Unimplemented
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return gcodes.Unavailable
	}
	switch {
	case httpStatus >= 200 && httpStatus < 300:
		return gcodes.OK
	case httpStatus >= 400 && httpStatus < 500:
		return gcodes.FailedPrecondition
	case httpStatus >= 500:
		return gcodes.Internal
	}
	return gcodes.Unknown
}

// ExtractProblem pulls the problem document out of a gRPC error, if present.
func ExtractProblem(err error) (*apis.ProblemDetails, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		p, err := adapter.FromStruct(s)
		if err != nil {
			return nil, false
		}
		return p, true
	}
	return nil, false
}

func toStatus(ctx context.Context, res apis.Resolver, logger *slog.Logger, method string, err error) error {
	if _, ok := err.(interface{ GRPCStatus() *gstatus.Status }); ok {
		return err
	}

	out, ok := res.TryMapError(err, request(ctx, method))
	if !ok {
		return err
	}
	p := out.Problem

	if logger != nil {
		level := slog.LevelWarn
		if out.Status >= 500 {
			level = slog.LevelError
		}
		attrs := append([]slog.Attr{
			slog.String("method", method),
			slog.String("error", err.Error()),
		}, adapter.LogAttrs(out)...)
		logger.LogAttrs(ctx, level, "rpc failed", attrs...)
	}

	base := gstatus.New(Code(out.Status), p.Detail)

	// Attach the document as details. Fall back to the bare status.
	if s, err := adapter.ToStruct(p); err == nil {
		if with, err := base.WithDetails(s); err == nil {
			return with.Err()
		}
	}
	return base.Err()
}

// request synthesizes the HTTP request handed to the resolver.
func request(ctx context.Context, method string) *http.Request {
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, method, nil)
	if err != nil {
		r = &http.Request{Method: http.MethodPost, URL: &url.URL{Path: method}, Header: http.Header{}}
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		for k, vs := range md {
			for _, v := range vs {
				r.Header.Add(k, v)
			}
		}
	}
	return r
}
