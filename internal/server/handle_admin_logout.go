package server

import "net/http"

func handleAdminLogout(auth *AdminAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth.Logout(r)
		http.SetCookie(w, sessionCookie("", -1))
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}
