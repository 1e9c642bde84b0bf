package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sixlab/storefront/internal/discord"
	"github.com/sixlab/storefront/internal/service"
	"github.com/sixlab/storefront/internal/session"
	"github.com/sixlab/storefront/pkg/utils"
)

type AuthService interface {
	LoginURL() string
	Authenticate(ctx context.Context, code string) (discord.User, error)
}

type AuthHandler struct {
	logger      *slog.Logger
	svc         AuthService
	sessions    *session.Manager
	checkoutURL string
}

func NewAuthHandler(logger *slog.Logger, svc AuthService, sessions *session.Manager, checkoutURL string) *AuthHandler {
	return &AuthHandler{
		logger:      logger.With(slog.String("handler", "auth")),
		svc:         svc,
		sessions:    sessions,
		checkoutURL: checkoutURL,
	}
}

func (h *AuthHandler) Init(r chi.Router) {
	r.Get("/api/discord/login", h.Login)
	r.Get("/api/discord/callback", h.Callback)
	r.Get("/api/me", h.Me)
	r.Post("/api/logout", h.Logout)
}

// Login redirects the browser to the Discord consent screen.
// @Summary  Start Discord OAuth
// @Tags     auth
// @Success  302
// @Router   /api/discord/login [get]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.svc.LoginURL(), http.StatusFound)
}

// Callback finishes the OAuth flow. All outcomes redirect back to the
// checkout page; the query string carries the result so the frontend
// stays a static site.
// @Summary  Discord OAuth callback
// @Tags     auth
// @Param    code  query  string  true  "Authorization code"
// @Success  302
// @Router   /api/discord/callback [get]
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirect(w, r, "?error=missing_code")
		return
	}

	user, err := h.svc.Authenticate(ctx, code)
	if errors.Is(err, service.ErrTokenExchange) {
		h.logger.ErrorContext(ctx, "token exchange failed", slog.Any("error", err))
		h.redirect(w, r, "?error=token_failed")
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "profile fetch failed", slog.Any("error", err))
		h.redirect(w, r, "?error=me_failed")
		return
	}

	if err := h.sessions.Issue(w, user.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to issue session", slog.Any("error", err))
		h.redirect(w, r, "?error=me_failed")
		return
	}

	loginsCompleted.Inc()
	h.redirect(w, r, "?login=success")
}

// Me reports the session's Discord user id, or null when there is none.
// The endpoint never errors so the frontend can poll it cheaply.
// @Summary  Current session
// @Tags     auth
// @Produce  json
// @Success  200  {object}  MeResponse
// @Router   /api/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := h.sessions.UserID(r)
	if err != nil {
		utils.WriteJSON(w, MeResponse{DiscordUserID: nil}, http.StatusOK)
		return
	}
	utils.WriteJSON(w, MeResponse{DiscordUserID: &userID}, http.StatusOK)
}

// Logout clears the session cookie.
// @Summary  Log out
// @Tags     auth
// @Produce  json
// @Success  200  {object}  OKResponse
// @Router   /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	utils.WriteJSON(w, OKResponse{OK: true}, http.StatusOK)
}

func (h *AuthHandler) redirect(w http.ResponseWriter, r *http.Request, suffix string) {
	http.Redirect(w, r, h.checkoutURL+suffix, http.StatusFound)
}
