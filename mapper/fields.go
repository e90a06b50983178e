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
	"net/http"
	"strconv"
	"strings"

	"dirpx.dev/problem/apis"
	"dirpx.dev/problem/naming"
	"dirpx.dev/problem/status"
)

// Tier sources reported by Explain.
const (
	srcExceptionOverride = "exception-override"
	srcContextOverride   = "context-override"
	srcValidation        = "validation"
	srcDeclared          = "declared"
	srcEntry             = "entry"
	srcFallback          = "fallback"
	srcResponse          = "response"
	srcTypeName          = "type-name"
	srcStatusName        = "status-name"
	srcMessage           = "message"
	srcTitle             = "title"
	srcHelpLink          = "help-link"
	srcRequestPath       = "request-path"
	srcStatusLink        = "status-link"
	srcDefaultHelpLink   = "default-help-link"
	srcSlug              = "slug"
	srcCustom            = "custom"
	srcAbsent            = "absent"
)

type strTier struct {
	source string
	fn     func() string
}

type intTier struct {
	source string
	fn     func() int
}

// pickString returns the value of the first tier producing a non-empty
// string. Nil tiers are skipped.
func pickString(tr *trace, field string, tiers ...strTier) string {
	for _, t := range tiers {
		if t.fn == nil {
			continue
		}
		if v := t.fn(); v != "" {
			tr.field(field, t.source, v)
			return v
		}
	}
	tr.field(field, srcAbsent, "")
	return ""
}

// pickStatus returns the value of the first tier producing a valid status.
func pickStatus(tr *trace, tiers ...intTier) int {
	for _, t := range tiers {
		if t.fn == nil {
			continue
		}
		if v := t.fn(); status.Valid(v) {
			tr.field("status", t.source, v)
			return v
		}
	}
	tr.field("status", srcFallback, fallbackStatus)
	return fallbackStatus
}

func onError(fn func(error) string, err error) func() string {
	if fn == nil {
		return nil
	}
	return func() string { return fn(err) }
}

func onErrorInt(fn func(error) int, err error) func() int {
	if fn == nil {
		return nil
	}
	return func() int { return fn(err) }
}

// onRequest binds a context-level override. The tier is skipped when there
// is no request to pass.
func onRequest(fn func(*http.Request) string, r *http.Request) func() string {
	if fn == nil || r == nil {
		return nil
	}
	return func() string { return fn(r) }
}

func onRequestInt(fn func(*http.Request) int, r *http.Request) func() int {
	if fn == nil || r == nil {
		return nil
	}
	return func() int { return fn(r) }
}

func constant(s string) func() string { return func() string { return s } }

func constantInt(n int) func() int { return func() int { return n } }

// declaredStatus returns the valid status declared by an apis.StatusCoder
// in the chain, or 0.
func declaredStatus(err error) int {
	var sc apis.StatusCoder
	if errors.As(err, &sc) {
		if code := sc.HTTPStatus(); status.Valid(code) {
			return code
		}
	}
	return 0
}

// helpLink returns the help link of the chain when it is an absolute URI.
// The raw link is returned as well so Explain can report ignored links.
func helpLink(err error) (link, raw string) {
	var hl apis.HelpLinker
	if !errors.As(err, &hl) {
		return "", ""
	}
	raw = hl.HelpLink()
	if absoluteURI(raw) {
		return raw, raw
	}
	return "", raw
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}

// slugType synthesizes the last-resort type URI from the title.
func slugType(title string, code int) string {
	s := naming.Slug(title)
	if s == "" {
		s = strconv.Itoa(code)
	}
	return "error:" + s
}

// wrapperTypes are single-cause wrappers skipped when formatting a title.
var wrapperTypes = map[string]struct{}{
	"*fmt.wrapError": {},
}

// opaqueTypes carry no meaningful name; their title falls back to the
// status name.
var opaqueTypes = map[string]struct{}{
	"*errors.errorString": {},
	"*errors.joinError":   {},
	"*fmt.wrapErrors":     {},
}

// typeTitle formats the dynamic type of err as a title, e.g.
// *app.DivideByZeroError -> "DivideByZero".
func typeTitle(err error) string {
	for err != nil {
		name := naming.TypeName(err)
		if _, ok := wrapperTypes[name]; ok {
			err = errors.Unwrap(err)
			continue
		}
		if _, ok := opaqueTypes[name]; ok {
			return ""
		}
		return naming.TypeTitle(name)
	}
	return ""
}

// trace collects Explain lines. A nil *trace discards everything, so the
// mapping hot path pays nothing.
type trace struct {
	lines []string
}

func (t *trace) add(format string, args ...any) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

func (t *trace) field(name, source string, value any) {
	if t == nil {
		return
	}
	switch v := value.(type) {
	case string:
		if source == srcAbsent {
			t.add("%-11s source=%s", name+":", source)
			return
		}
		t.add("%-11s source=%s -> %q", name+":", source, v)
	default:
		t.add("%-11s source=%s -> %v", name+":", source, v)
	}
}

func (t *trace) String() string {
	if t == nil {
		return ""
	}
	return strings.Join(t.lines, "\n")
}
