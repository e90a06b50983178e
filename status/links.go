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

package status

import "net/http"

// links maps well-known status codes to the section of the RFC that defines
// them. It is the second tier of the problem "type" resolution: a typed HTTP
// error or an empty-bodied error response with one of these codes gets the
// link as its type when no override applies.
var links = map[int]string{
	// 3xx: redirection.
	http.StatusMultipleChoices:   "https://tools.ietf.org/html/rfc7231#section-6.4.1",
	http.StatusMovedPermanently:  "https://tools.ietf.org/html/rfc7231#section-6.4.2",
	http.StatusFound:             "https://tools.ietf.org/html/rfc7231#section-6.4.3",
	http.StatusSeeOther:          "https://tools.ietf.org/html/rfc7231#section-6.4.4",
	http.StatusNotModified:       "https://tools.ietf.org/html/rfc7232#section-4.1",
	http.StatusUseProxy:          "https://tools.ietf.org/html/rfc7231#section-6.4.5",
	http.StatusTemporaryRedirect: "https://tools.ietf.org/html/rfc7231#section-6.4.7",
	http.StatusPermanentRedirect: "https://tools.ietf.org/html/rfc7538#section-3",

	// 4xx: client errors.
	http.StatusBadRequest:                   "https://tools.ietf.org/html/rfc7231#section-6.5.1",
	http.StatusUnauthorized:                 "https://tools.ietf.org/html/rfc7235#section-3.1",
	http.StatusPaymentRequired:              "https://tools.ietf.org/html/rfc7231#section-6.5.2",
	http.StatusForbidden:                    "https://tools.ietf.org/html/rfc7231#section-6.5.3",
	http.StatusNotFound:                     "https://tools.ietf.org/html/rfc7231#section-6.5.4",
	http.StatusMethodNotAllowed:             "https://tools.ietf.org/html/rfc7231#section-6.5.5",
	http.StatusNotAcceptable:                "https://tools.ietf.org/html/rfc7231#section-6.5.6",
	http.StatusProxyAuthRequired:            "https://tools.ietf.org/html/rfc7235#section-3.2",
	http.StatusRequestTimeout:               "https://tools.ietf.org/html/rfc7231#section-6.5.7",
	http.StatusConflict:                     "https://tools.ietf.org/html/rfc7231#section-6.5.8",
	http.StatusGone:                         "https://tools.ietf.org/html/rfc7231#section-6.5.9",
	http.StatusLengthRequired:               "https://tools.ietf.org/html/rfc7231#section-6.5.10",
	http.StatusPreconditionFailed:           "https://tools.ietf.org/html/rfc7232#section-4.2",
	http.StatusRequestEntityTooLarge:        "https://tools.ietf.org/html/rfc7231#section-6.5.11",
	http.StatusRequestURITooLong:            "https://tools.ietf.org/html/rfc7231#section-6.5.12",
	http.StatusUnsupportedMediaType:         "https://tools.ietf.org/html/rfc7231#section-6.5.13",
	http.StatusRequestedRangeNotSatisfiable: "https://tools.ietf.org/html/rfc7233#section-4.4",
	http.StatusExpectationFailed:            "https://tools.ietf.org/html/rfc7231#section-6.5.14",
	http.StatusUnprocessableEntity:          "https://tools.ietf.org/html/rfc4918#section-11.2",
	http.StatusLocked:                       "https://tools.ietf.org/html/rfc4918#section-11.3",
	http.StatusFailedDependency:             "https://tools.ietf.org/html/rfc4918#section-11.4",
	http.StatusUpgradeRequired:              "https://tools.ietf.org/html/rfc7231#section-6.5.15",
	http.StatusPreconditionRequired:         "https://tools.ietf.org/html/rfc6585#section-3",
	http.StatusTooManyRequests:              "https://tools.ietf.org/html/rfc6585#section-4",
	http.StatusRequestHeaderFieldsTooLarge:  "https://tools.ietf.org/html/rfc6585#section-5",
	http.StatusUnavailableForLegalReasons:   "https://tools.ietf.org/html/rfc7725#section-3",

	// 5xx: server errors.
	http.StatusInternalServerError:           "https://tools.ietf.org/html/rfc7231#section-6.6.1",
	http.StatusNotImplemented:                "https://tools.ietf.org/html/rfc7231#section-6.6.2",
	http.StatusBadGateway:                    "https://tools.ietf.org/html/rfc7231#section-6.6.3",
	http.StatusServiceUnavailable:            "https://tools.ietf.org/html/rfc7231#section-6.6.4",
	http.StatusGatewayTimeout:                "https://tools.ietf.org/html/rfc7231#section-6.6.5",
	http.StatusHTTPVersionNotSupported:       "https://tools.ietf.org/html/rfc7231#section-6.6.6",
	http.StatusInsufficientStorage:           "https://tools.ietf.org/html/rfc4918#section-11.5",
	http.StatusNetworkAuthenticationRequired: "https://tools.ietf.org/html/rfc6585#section-6",
}
