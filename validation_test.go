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

package problem

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"dirpx.dev/problem/apis"
)

func TestValidationError_FromMap(t *testing.T) {
	in := map[string][]string{
		"memberName1": {"error1", "error2"},
		"memberName2": {"error1", "error2"},
	}
	e := NewValidationError(in)

	in["memberName1"][0] = "mutated"

	got := e.ValidationErrors()
	if len(got) != 2 {
		t.Fatalf("keys = %d", len(got))
	}
	for k, v := range got {
		if !reflect.DeepEqual(v, []string{"error1", "error2"}) {
			t.Fatalf("%s = %v", k, v)
		}
	}
	if e.HTTPStatus() != http.StatusBadRequest {
		t.Fatal("validation errors are always 400")
	}
}

func TestValidationError_DuplicatesPreserved(t *testing.T) {
	e := Invalid("name", "required", "required")
	if got := e.ValidationErrors()["name"]; len(got) != 2 {
		t.Fatalf("messages = %v", got)
	}
}

func TestValidationError_FromFields(t *testing.T) {
	e := NewValidationErrorFromFields(map[string][]FieldError{
		"address": {
			{Message: "street is required", Members: []string{"street"}},
			{Message: "zip is invalid", Members: []string{"zip"}},
		},
	})

	want := map[string][]string{"address": {"street is required", "zip is invalid"}}
	if got := e.ValidationErrors(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ValidationErrors() = %v", got)
	}
	if got := e.FieldErrors()["address"][1].Members; !reflect.DeepEqual(got, []string{"zip"}) {
		t.Fatalf("members = %v", got)
	}
	if Invalid("x").FieldErrors() != nil {
		t.Fatal("plain validation errors have no structured form")
	}
}

func TestValidationError_AddCopies(t *testing.T) {
	e1 := Invalid("a", "m1")
	e2 := e1.Add("a", "m2").Add("b", "m3")

	if len(e1.ValidationErrors()["a"]) != 1 {
		t.Fatal("original mutated")
	}
	want := map[string][]string{"a": {"m1", "m2"}, "b": {"m3"}}
	if got := e2.ValidationErrors(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ValidationErrors() = %v", got)
	}
}

func TestValidationError_Message(t *testing.T) {
	e := Invalid("b", "x").Add("a", "y")
	if got := e.Error(); !strings.HasPrefix(got, defaultValidationMessage) || !strings.Contains(got, "[a b]") {
		t.Fatalf("Error() = %q", got)
	}

	var target apis.ValidationErrorer
	if !errors.As(fmt.Errorf("wrap: %w", e), &target) {
		t.Fatal("errors.As through wrap failed")
	}
}

func TestValidationError_TypedNil(t *testing.T) {
	var e *ValidationError
	if got := e.Error(); got != "<nil>" {
		t.Fatalf("Error() = %q", got)
	}
	if got := e.ValidationErrors(); len(got) != 0 {
		t.Fatalf("ValidationErrors() = %v", got)
	}
	if e.FieldErrors() != nil {
		t.Fatal("FieldErrors() must be nil")
	}
	if e.HTTPStatus() != http.StatusBadRequest {
		t.Fatalf("HTTPStatus() = %d", e.HTTPStatus())
	}
}
