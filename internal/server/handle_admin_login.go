package server

import (
	"errors"
	"log/slog"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func handleAdminLogin(logger *slog.Logger, auth *AdminAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		id, err := auth.Login(r.Context(), req.Username, req.Password)
		if errors.Is(err, ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if err != nil {
			logger.Error("admin login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Login failed")
			return
		}

		http.SetCookie(w, sessionCookie(id, int(sessionTTL.Seconds())))
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}
