// internal/controller/respond.go
package controller

import (
	"encoding/json"
	"net/http"
)

// Every endpoint answers with the same envelope: a success flag plus either
// data or a human-readable error.
func writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// organizationID reads the explicit organization scope off the request.
// There is deliberately no process-wide default organization.
func organizationID(r *http.Request) string {
	return r.Header.Get("X-Organization-ID")
}
