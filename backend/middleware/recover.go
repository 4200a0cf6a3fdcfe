// ABOUTME: Panic recovery middleware
// ABOUTME: Converts handler panics into JSON 500 responses

package middleware

import (
	"log/slog"
	"net/http"
)

// Recover turns a panic in the wrapped handler into a 500 response.
func Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Handler panicked", "path", sanitizePath(r.URL.Path), "panic", rec)
				writeJSONError(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}
