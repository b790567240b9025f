// Package web holds the small JSON response helpers shared by the route
// handlers.
package web

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the {"error": msg} failure envelope used by every route.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Unauthorized writes the {"message": msg} envelope the auth gate uses.
func Unauthorized(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusUnauthorized, map[string]string{"message": msg})
}
