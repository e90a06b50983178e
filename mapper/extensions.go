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
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"dirpx.dev/problem/apis"
	"dirpx.dev/problem/naming"
)

// extensions builds the extension members of an exception problem:
// exposed scalar fields, the validation "errors" map and, when enabled for
// the request, "errorDetails".
func (c *config) extensions(err error, r *http.Request, tr *trace) map[string]any {
	ext := make(map[string]any)

	if c.expose {
		var ep apis.ExtensionProvider
		if errors.As(err, &ep) {
			for _, f := range ep.ProblemExtensions() {
				key := naming.LowerCamel(f.Name)
				switch {
				case key == "" || apis.IsReserved(key):
					tr.add("%-11s %q (reserved)", "skipped:", f.Name)
				case !scalar(f.Value):
					tr.add("%-11s %q (%T)", "skipped:", f.Name, f.Value)
				default:
					ext[key] = f.Value
				}
			}
		}
	}

	var ve apis.ValidationErrorer
	if errors.As(err, &ve) {
		if errs := ve.ValidationErrors(); errs != nil {
			ext[apis.ExtensionErrors] = copyErrors(errs)
		}
	}

	if c.includeDetails != nil && r != nil && c.includeDetails(r) {
		ext[apis.ExtensionErrorDetails] = errorDetails(err)
	}

	if tr != nil {
		keys := make([]string, 0, len(ext))
		for k := range ext {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) == 0 {
			tr.add("%-11s none", "extensions:")
		} else {
			tr.add("%-11s %s", "extensions:", strings.Join(keys, ", "))
		}
	}

	if len(ext) == 0 {
		return nil
	}
	return ext
}

// scalar reports whether v is a string, a bool or a number JSON can encode.
// Named types with such an underlying kind (e.g. time.Duration) qualify as
// well. NaN and infinities do not.
func scalar(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return false
	}
}

// copyErrors detaches the validation map from the error value. Messages are
// copied as given; duplicates are preserved.
func copyErrors(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for k, v := range src {
		dst[k] = append([]string(nil), v...)
	}
	return dst
}

// errorDetails describes the chain of err, outermost first.
func errorDetails(err error) apis.ErrorDetails {
	d := apis.ErrorDetails{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}
	for c := errors.Unwrap(err); c != nil; c = errors.Unwrap(c) {
		d.Causes = append(d.Causes, c.Error())
	}
	return d
}
