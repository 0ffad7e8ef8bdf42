// Package testutil provides test helpers for the Wick project.
// It includes coded error assertions and script fixture helpers.
package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wickjs/wick/internal/wkerr"
)

// -----------------------------------------------------------------------------
// Error Assertions
// -----------------------------------------------------------------------------

// AssertCoded checks that an error carries the expected domain and code.
// If err is nil, uncoded, or carries a different code, the test fails.
func AssertCoded(t *testing.T, err error, domain wkerr.Domain, code int) {
	t.Helper()

	if err == nil {
		t.Errorf("expected %s:%d error, got nil", domain, code)
		return
	}

	var werr *wkerr.Error
	if !errors.As(err, &werr) {
		t.Errorf("expected %s:%d error, got uncoded error: %v", domain, code, err)
		return
	}

	if werr.GetDomain() != domain || werr.GetCode() != code {
		t.Errorf("expected error %s:%d, got %s:%d\nerror: %v",
			domain, code, werr.GetDomain(), werr.GetCode(), err)
	}
}

// AssertNoError checks that an error is nil.
// If err is not nil, the test fails with the error message.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

// AssertErrorContains checks that an error message contains a substring.
// If err is nil, the test fails.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error containing %q, got nil", substr)
		return
	}

	if !strings.Contains(err.Error(), substr) {
		t.Errorf("error message does not contain %q\ngot: %v", substr, err)
	}
}

// -----------------------------------------------------------------------------
// Script Fixtures
// -----------------------------------------------------------------------------

// TempScript writes src to a script file in a fresh temp directory and
// returns its path. The directory is removed when the test finishes.
func TempScript(t *testing.T, name, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write script fixture: %v", err)
	}

	return path
}

// -----------------------------------------------------------------------------
// Setup Helpers
// -----------------------------------------------------------------------------

// Must asserts that err is nil, or fails the test immediately.
// Useful for test setup code.
func Must(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// MustValue asserts that err is nil, or fails the test immediately.
// Returns the value on success.
func MustValue[T any](t *testing.T, value T, err error) T {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	return value
}
