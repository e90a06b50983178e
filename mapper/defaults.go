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
	"net/http"

	"dirpx.dev/problem/status"
)

// validationTitle is the default title of validation problems.
const validationTitle = "One or more validation errors occurred."

// fallbackStatus is used when no tier produced a status for an exception.
const fallbackStatus = http.StatusInternalServerError

// defaultExceptionEntry is the catch-all registered after every caller
// registration: it handles any non-nil error.
func defaultExceptionEntry(seq int) exceptionEntry {
	return exceptionEntry{
		key:           "error",
		seq:           seq,
		match:         matchAs[error],
		entrySettings: entrySettings{order: lastOrder},
	}
}

// defaultResponseEntry is the wildcard response mapper registered after
// every caller registration.
func defaultResponseEntry(seq int) responseEntry {
	return responseEntry{
		code:          status.Any,
		seq:           seq,
		entrySettings: entrySettings{order: lastOrder},
	}
}
