package controller

import (
	"encoding/json"
	"net/http"
)

// writeJSON sets the content type, writes status and encodes v
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
