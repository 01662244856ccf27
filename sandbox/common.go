// Package sandbox serves a local stand-in for the platform REST API. It
// answers in the same {success, ...payload, message} envelope as the real
// backend so the CLI and the project store can run against it.
package sandbox

import (
	"encoding/json"
	"net/http"

	"github.com/hairizuanbinnoorazman/bizadmin/logger"
)

// envelope is a response body. respond adds "success".
type envelope map[string]interface{}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respond writes a successful envelope carrying payload.
func respond(w http.ResponseWriter, status int, payload envelope) {
	body := envelope{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	respondJSON(w, status, body)
}

// respondError writes a failed envelope with the given message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{"success": false, "message": message})
}

// respondMessage writes a successful envelope with only a message.
func respondMessage(w http.ResponseWriter, message string) {
	respond(w, http.StatusOK, envelope{"message": message})
}

// parseJSON parses JSON from the request body into the given destination.
func parseJSON(r *http.Request, dest interface{}, log logger.Logger) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		log.Warn(r.Context(), "failed to parse JSON", map[string]interface{}{
			"error": err.Error(),
			"path":  r.URL.Path,
		})
		return err
	}
	return nil
}

// HealthHandler handles health check requests.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, envelope{"status": "healthy"})
}
