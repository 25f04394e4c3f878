package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/xid"
	"github.com/sakif/taskflow/internal/apperror"
	"github.com/sakif/taskflow/internal/auth"
	"github.com/sakif/taskflow/internal/service"
)

// AuthHandler manages the GitHub OAuth login flow and session management.
//
//   - HandleGitHubLogin    → redirect the browser to GitHub's authorization page
//   - HandleGitHubCallback → receive the code, log the user in, set the JWT cookie
//   - HandleLogout         → clear the JWT cookie
//   - HandleCurrentUser    → return the logged-in user's profile
type AuthHandler struct {
	github *auth.GitHubProvider
	auths  *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(github *auth.GitHubProvider, auths *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		github: github,
		auths:  auths,
		logger: logger,
	}
}

// HandleGitHubLogin redirects the user to GitHub's authorization page.
//
// HTTP: GET /auth/github/login
//
// A random state value goes into a short-lived cookie; the callback verifies
// it matches the state GitHub echoes back. That proves the flow started on
// this server and not on an attacker's page.
func (h *AuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes — long enough to approve, short enough to limit risk
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the OAuth login flow.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
//
//  1. Validate the state parameter (CSRF check)
//  2. Exchange the code for a GitHub user profile
//  3. LoginGitHub: upsert the user, issue the session token
//  4. Set the JWT as an HttpOnly cookie and redirect to the app
func (h *AuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" {
		h.logger.Warn("auth callback: missing state cookie")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("auth callback: state mismatch")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// The state cookie is single-use — clear it regardless of outcome.
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	// GitHub reports "the user clicked Deny" via an error query param.
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("auth callback: authorization denied", slog.String("error", errParam))
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("auth callback: GitHub exchange failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	result, err := h.auths.LoginGitHub(r.Context(), ghUser)
	if err != nil {
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	// HttpOnly keeps the token out of reach of page scripts; SameSite=Lax
	// still sends it on top-level navigations. Secure stays off for local
	// dev — enable it behind HTTPS.
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(auth.SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the JWT cookie, effectively logging the user out.
//
// HTTP: POST /auth/logout
//
// Sessions are stateless, so "logout" means deleting the client-side cookie.
// The token itself stays valid until expiry, but the browser no longer has it.
// POST rather than GET: logout changes state, and GET would be prefetchable.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleCurrentUser returns the currently authenticated user's profile.
//
// HTTP: GET /api/auth/user
// Auth: required
//
// A valid token whose user no longer exists in the database (deleted account,
// wiped DB) is treated as not logged in: 401, same body the middleware sends.
func (h *AuthHandler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Unauthorized"})
		return
	}

	user, err := h.auths.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Unauthorized"})
			return
		}
		writeError(w, h.logger, err, "user", "Failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
