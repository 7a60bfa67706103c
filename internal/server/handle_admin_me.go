package server

import "net/http"

// handleAdminMe lets the admin UI check whether its session is still
// valid without triggering a login prompt.
func handleAdminMe(auth *AdminAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := auth.SessionFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"username": sess.Username})
	}
}
