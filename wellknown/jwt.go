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

	"github.com/golang-jwt/jwt/v5"

	"dirpx.dev/problem/mapper"
)

// JWT maps token validation errors of golang-jwt to 401. Parse errors join
// several sentinels; the most specific one is registered first.
func JWT() mapper.Option {
	unauthorized := func(target error, title, detail string) mapper.Option {
		return mapper.MapSentinel(target,
			mapper.DefaultStatus(http.StatusUnauthorized),
			mapper.DefaultTitle(title),
			mapper.DetailFrom(fixed(detail)),
		)
	}
	return mapper.Bundle(
		unauthorized(jwt.ErrTokenExpired, "Token Expired", "The access token has expired."),
		unauthorized(jwt.ErrTokenNotValidYet, "Token Not Yet Valid", "The access token is not valid yet."),
		unauthorized(jwt.ErrTokenSignatureInvalid, "Invalid Token", "The access token signature is invalid."),
		unauthorized(jwt.ErrTokenMalformed, "Invalid Token", "The access token is malformed."),
		unauthorized(jwt.ErrTokenUnverifiable, "Invalid Token", "The access token cannot be verified."),
		unauthorized(jwt.ErrTokenInvalidClaims, "Invalid Token", "The access token claims are invalid."),
	)
}
