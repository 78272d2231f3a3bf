// Package middleware contains the request-coordination pipeline stages.
// The stages are composed in an explicit order by the router; each stage
// reads and writes only the reqctx values it declares in its doc comment.
package middleware

import (
	"encoding/json"
	"net/http"
)

func writeJSONError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

// isMutating reports whether the method implies a state change that the
// idempotency and audit stages care about.
func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
