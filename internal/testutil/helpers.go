// internal/testutil/helpers.go
package testutil

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
)

// AssertEqual verifica que dos valores sean iguales.
func AssertEqual(t *testing.T, got, want interface{}, msg string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}

// AssertNotEqual verifica que dos valores sean diferentes.
func AssertNotEqual(t *testing.T, got, want interface{}, msg string) {
	t.Helper()
	if got == want {
		t.Errorf("%s: got %v, should not equal %v", msg, got, want)
	}
}

// AssertNil verifica que un valor sea nil.
func AssertNil(t *testing.T, got interface{}, msg string) {
	t.Helper()
	if got != nil {
		t.Errorf("%s: expected nil, got %v", msg, got)
	}
}

// AssertNotNil verifica que un valor no sea nil.
func AssertNotNil(t *testing.T, got interface{}, msg string) {
	t.Helper()
	if got == nil {
		t.Errorf("%s: expected non-nil value", msg)
	}
}

// AssertError verifica que un error no sea nil.
func AssertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected error, got nil", msg)
	}
}

// AssertNoError verifica que no haya error.
func AssertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", msg, err)
	}
}

// AssertTrue verifica que una condición sea verdadera.
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Errorf("%s: expected true, got false", msg)
	}
}

// AssertFalse verifica que una condición sea falsa.
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Errorf("%s: expected false, got true", msg)
	}
}

// AssertContains verifica que un slice contenga un elemento O que un string contenga un substring.
func AssertContains(t *testing.T, container interface{}, element string, msg string) {
	t.Helper()

	switch v := container.(type) {
	case []string:
		for _, item := range v {
			if item == element {
				return
			}
		}
		t.Errorf("%s: slice %v does not contain %s", msg, v, element)
	case string:
		if !strings.Contains(v, element) {
			t.Errorf("%s: string %q does not contain %q", msg, v, element)
		}
	default:
		t.Errorf("%s: unsupported type for AssertContains", msg)
	}
}

// AssertLen verifica la longitud de un slice, map o string.
func AssertLen(t *testing.T, container interface{}, want int, msg string) {
	t.Helper()
	v := reflect.ValueOf(container)
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.String, reflect.Array:
		if v.Len() != want {
			t.Errorf("%s: got length %d, want %d", msg, v.Len(), want)
		}
	default:
		t.Errorf("%s: AssertLen does not support %T", msg, container)
	}
}

// AssertDeepEqual compara valores compuestos (slices, maps, structs).
func AssertDeepEqual(t *testing.T, got, want interface{}, msg string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%s:\n got  %#v\n want %#v", msg, got, want)
	}
}

// AssertNotContains verifica que un string no contenga un substring.
func AssertNotContains(t *testing.T, s, substr string, msg string) {
	t.Helper()
	if strings.Contains(s, substr) {
		t.Errorf("%s: %q should not contain %q", msg, s, substr)
	}
}

// Count cuenta ocurrencias no solapadas de substr en s.
func Count(s, substr string) int {
	return strings.Count(s, substr)
}

// AssertErrorIs verifica que target esté en la cadena de err.
func AssertErrorIs(t *testing.T, err, target error, msg string) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("%s: got %v, want an error matching %v", msg, err, target)
	}
}

// AssertSucceeded falla si el resultado de instalación no es un éxito.
func AssertSucceeded(t *testing.T, res domain.InstallationResult, msg string) {
	t.Helper()
	if !res.Succeeded {
		t.Errorf("%s: install failed: %s\n%s", msg, res.Message, res.Details)
	}
}

// AssertFailed checks a failed result whose message contains want.
func AssertFailed(t *testing.T, res domain.InstallationResult, want, msg string) {
	t.Helper()
	if res.Succeeded {
		t.Errorf("%s: expected failure, got success: %s", msg, res.Message)
		return
	}
	if !strings.Contains(res.Message, want) {
		t.Errorf("%s: message %q does not contain %q", msg, res.Message, want)
	}
}
