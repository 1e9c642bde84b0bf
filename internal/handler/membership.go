package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sixlab/storefront/internal/entities"
	"github.com/sixlab/storefront/internal/session"
	"github.com/sixlab/storefront/pkg/utils"
)

type MembershipService interface {
	Check(ctx context.Context, userID string) (entities.Membership, error)
}

type MembershipHandler struct {
	logger   *slog.Logger
	svc      MembershipService
	sessions *session.Manager
}

func NewMembershipHandler(logger *slog.Logger, svc MembershipService, sessions *session.Manager) *MembershipHandler {
	return &MembershipHandler{
		logger:   logger.With(slog.String("handler", "membership")),
		svc:      svc,
		sessions: sessions,
	}
}

func (h *MembershipHandler) Init(r chi.Router) {
	r.Get("/api/discord/membership", h.Check)
}

// Check resolves the membership gate for the session user. Every call
// hits Discord so a just-accepted rules screen is visible immediately.
// A userId query parameter overrides a missing session.
// @Summary  Check guild membership
// @Tags     membership
// @Produce  json
// @Param    userId  query  string  false  "Discord user id (fallback when no session)"
// @Success  200  {object}  MembershipResponse
// @Failure  400  {object}  utils.ErrorResponse "MISSING_USER_ID"
// @Failure  502  {object}  utils.ErrorResponse "DISCORD_ERROR"
// @Router   /api/discord/membership [get]
func (h *MembershipHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := h.sessions.UserID(r)
	if err != nil {
		userID = r.URL.Query().Get("userId")
	}
	if userID == "" {
		utils.WriteError(w, "MISSING_USER_ID", http.StatusBadRequest)
		return
	}

	membership, err := h.svc.Check(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "membership lookup failed",
			slog.String("user_id", userID), slog.Any("error", err))
		utils.WriteError(w, "DISCORD_ERROR", http.StatusBadGateway)
		return
	}

	utils.WriteJSON(w, MembershipEntityToJSON(membership), http.StatusOK)
}
