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
	"net/http"

	"github.com/redis/go-redis/v9"

	"dirpx.dev/problem/mapper"
)

// Redis maps redis.Nil (missing key) to 404 and a closed client to 503.
func Redis() mapper.Option {
	return mapper.Bundle(
		mapper.MapSentinel(redis.Nil,
			mapper.DefaultStatus(http.StatusNotFound),
			mapper.DefaultTitle("Not Found"),
			mapper.DetailFrom(fixed("The requested entry does not exist.")),
		),
		mapper.MapSentinel(redis.ErrClosed,
			mapper.DefaultStatus(http.StatusServiceUnavailable),
			mapper.DefaultTitle("Service Unavailable"),
			mapper.DetailFrom(fixed("The cache is not available.")),
		),
	)
}
