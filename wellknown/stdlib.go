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

package wellknown

import (
	"context"
	"encoding/json"
	"net/http"

	"dirpx.dev/problem/mapper"
)

// Context maps context.DeadlineExceeded to 504 and context.Canceled to 408.
func Context() mapper.Option {
	return mapper.Bundle(
		mapper.MapSentinel(context.DeadlineExceeded,
			mapper.DefaultStatus(http.StatusGatewayTimeout),
			mapper.DefaultTitle("Gateway Timeout"),
			mapper.DetailFrom(fixed("The operation did not complete in time.")),
		),
		mapper.MapSentinel(context.Canceled,
			mapper.DefaultStatus(http.StatusRequestTimeout),
			mapper.DefaultTitle("Request Canceled"),
			mapper.DetailFrom(fixed("The request was canceled.")),
		),
	)
}

// Decoding maps request body errors: an exceeded http.MaxBytesReader limit
// to 413 and malformed JSON to 400.
func Decoding() mapper.Option {
	return mapper.Bundle(
		mapper.MapException[*http.MaxBytesError](
			mapper.DefaultStatus(http.StatusRequestEntityTooLarge),
			mapper.DefaultTitle("Request Entity Too Large"),
		),
		mapper.MapException[*json.SyntaxError](
			mapper.DefaultStatus(http.StatusBadRequest),
			mapper.DefaultTitle("Malformed JSON"),
		),
		mapper.MapException[*json.UnmarshalTypeError](
			mapper.DefaultStatus(http.StatusBadRequest),
			mapper.DefaultTitle("Malformed JSON"),
		),
	)
}
