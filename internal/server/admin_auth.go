package server

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rkcl/league-api/internal/kv"
)

const (
	adminCookieName = "admin_session"
	sessionTTL      = 7 * 24 * time.Hour
)

var (
	// ErrInvalidCredentials covers both a wrong username and a wrong
	// password so the response leaks nothing about which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoSession is returned when the request carries no valid
	// admin session.
	ErrNoSession = errors.New("no valid admin session")
)

// AdminAuth authenticates the single configured admin account and
// keeps sessions in the KV store so they survive restarts.
type AdminAuth struct {
	username        string
	passwordHash    string
	answersPassword string
	store           kv.Store
}

func NewAdminAuth(username, passwordHash, answersPassword string, store kv.Store) *AdminAuth {
	return &AdminAuth{
		username:        username,
		passwordHash:    passwordHash,
		answersPassword: answersPassword,
		store:           store,
	}
}

type adminSession struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func sessionKey(id string) string { return "admin:session:" + id }

// Login verifies the credentials and creates a new session, returning
// its ID for the cookie.
func (a *AdminAuth) Login(ctx context.Context, username, password string) (string, error) {
	if a.passwordHash == "" {
		return "", errors.New("admin login is not configured")
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password))
	if !userOK || passErr != nil {
		return "", ErrInvalidCredentials
	}

	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	sess := adminSession{Username: a.username, CreatedAt: time.Now().UTC()}
	if err := a.store.Set(ctx, sessionKey(id), sess); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return id, nil
}

// SessionFromRequest resolves the session cookie to a live session.
func (a *AdminAuth) SessionFromRequest(r *http.Request) (adminSession, error) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return adminSession{}, ErrNoSession
	}

	var sess adminSession
	if err := a.store.Get(r.Context(), sessionKey(cookie.Value), &sess); err != nil {
		return adminSession{}, ErrNoSession
	}
	if time.Since(sess.CreatedAt) > sessionTTL {
		_ = a.store.Delete(r.Context(), sessionKey(cookie.Value))
		return adminSession{}, ErrNoSession
	}
	return sess, nil
}

// Logout drops the session referenced by the request cookie, if any.
func (a *AdminAuth) Logout(r *http.Request) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return
	}
	_ = a.store.Delete(r.Context(), sessionKey(cookie.Value))
}

// AnswersUnlocked reports whether the supplied password opens the
// answer sheet ahead of the window closing.
func (a *AdminAuth) AnswersUnlocked(password string) bool {
	if a.answersPassword == "" || password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.answersPassword)) == 1
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func sessionCookie(id string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     adminCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
