// ABOUTME: Test helpers for e2e tests
// ABOUTME: Provides utilities for environment variable management in tests

package e2e

import (
	"os"
	"path/filepath"
	"testing"
)

// withTestEnv sets the given variables and points ENV_FILE at a missing file,
// returning a cleanup function that restores all original values.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withTestEnv(t, map[string]string{
//	        "CORS_ALLOWED_ORIGINS": "https://example.com",
//	    }))
//	}
func withTestEnv(t *testing.T, extra map[string]string) func() {
	t.Helper()

	vars := map[string]string{"ENV_FILE": filepath.Join(t.TempDir(), "missing.env")}
	for key, value := range extra {
		vars[key] = value
	}

	type original struct {
		value string
		set   bool
	}
	originals := make(map[string]original, len(vars))
	for key, value := range vars {
		v, ok := os.LookupEnv(key)
		originals[key] = original{value: v, set: ok}
		os.Setenv(key, value)
	}

	return func() {
		for key, o := range originals {
			if o.set {
				os.Setenv(key, o.value)
			} else {
				os.Unsetenv(key)
			}
		}
	}
}
