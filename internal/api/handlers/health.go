package handlers

import (
	"net/http"
)

// Health reports service liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{"status": "ok", "service": "drive-conditions"}
	writeJSON(w, r, http.StatusOK, res)
}
