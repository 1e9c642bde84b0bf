package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sixlab/storefront/internal/entities"
	"github.com/sixlab/storefront/internal/middleware"
	"github.com/sixlab/storefront/internal/ratelimit"
	"github.com/sixlab/storefront/pkg/utils"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, sub entities.OrderSubmission) (entities.OrderReceipt, error)
	CloseOrder(ctx context.Context, channelID string) error
	DeleteOrder(ctx context.Context, channelID string) error
	GrantAccess(ctx context.Context, channelID, customerID string) error
}

type OrderHandler struct {
	logger      *slog.Logger
	validate    *validator.Validate
	svc         OrderService
	limiter     ratelimit.Limiter
	adminSecret string
}

func NewOrderHandler(logger *slog.Logger, svc OrderService, limiter ratelimit.Limiter, adminSecret string) *OrderHandler {
	return &OrderHandler{
		logger:      logger.With(slog.String("handler", "order")),
		validate:    newValidate(),
		svc:         svc,
		limiter:     limiter,
		adminSecret: adminSecret,
	}
}

func (h *OrderHandler) Init(r chi.Router) {
	r.With(middleware.RateLimit(h.logger, h.limiter, "order")).
		Post("/api/order", h.PlaceOrder)

	admin := middleware.AdminAuth(h.adminSecret)
	r.With(admin, middleware.RateLimit(h.logger, h.limiter, "close")).
		Post("/api/order/close", h.CloseOrder)
	r.With(admin).Post("/api/order/grant", h.GrantAccess)
}

// PlaceOrder accepts a cart and opens a private order channel.
// @Summary      Submit an order
// @Description  Validates the cart, creates a private Discord channel and posts the order summary
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      OrderRequest  true  "Order payload"
// @Success      200  {object}  OrderResponse
// @Failure      400  {object}  utils.ErrorResponse "INVALID_PAYLOAD"
// @Failure      415  {object}  utils.ErrorResponse "UNSUPPORTED_MEDIA_TYPE"
// @Failure      429  {object}  utils.ErrorResponse "RATE_LIMITED"
// @Failure      502  {object}  utils.ErrorResponse "DISCORD_CREATE_CHANNEL_FAILED"
// @Router       /api/order [post]
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ct := r.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		utils.WriteError(w, "UNSUPPORTED_MEDIA_TYPE", http.StatusUnsupportedMediaType)
		return
	}

	var req OrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	receipt, err := h.svc.PlaceOrder(ctx, OrderRequestToEntity(req))

	if errors.Is(err, entities.ErrChannelCreateFailed) {
		ordersFailed.WithLabelValues("channel_create").Inc()
		utils.WriteError(w, "DISCORD_CREATE_CHANNEL_FAILED", http.StatusBadGateway)
		return
	}

	if err != nil {
		ordersFailed.WithLabelValues("internal").Inc()
		h.logger.ErrorContext(ctx, "failed to place order", slog.Any("error", err))
		utils.WriteError(w, "SERVER_ERROR", http.StatusInternalServerError)
		return
	}

	ordersPlaced.Inc()
	utils.WriteJSON(w, OrderResponse{
		OK:        true,
		OrderID:   receipt.OrderID,
		ChannelID: receipt.ChannelID,
		InviteURL: receipt.InviteURL,
	}, http.StatusOK)
}

// CloseOrder soft-closes or deletes an order channel.
// @Summary      Close or delete an order channel
// @Tags         orders
// @Param        x-admin-secret  header  string  true  "Operator secret"
// @Success      200  {object}  OKResponse
// @Failure      401  {object}  utils.ErrorResponse "UNAUTHORIZED"
// @Failure      502  {object}  utils.ErrorResponse "DELETE_FAILED"
// @Router       /api/order/close [post]
func (h *OrderHandler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CloseRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	if req.Action == "delete" {
		if err := h.svc.DeleteOrder(ctx, req.ChannelID); err != nil {
			h.logger.ErrorContext(ctx, "failed to delete channel",
				slog.String("channel_id", req.ChannelID), slog.Any("error", err))
			utils.WriteError(w, "DELETE_FAILED", http.StatusBadGateway)
			return
		}
		utils.WriteJSON(w, OKResponse{OK: true}, http.StatusOK)
		return
	}

	// Close never fails the request: the rename and closing message are
	// both best-effort markers.
	h.svc.CloseOrder(ctx, req.ChannelID)
	utils.WriteJSON(w, OKResponse{OK: true}, http.StatusOK)
}

// GrantAccess re-applies channel permissions for a customer.
// @Summary      Re-grant channel access
// @Tags         orders
// @Param        x-admin-secret  header  string  true  "Operator secret"
// @Success      200  {object}  OKResponse
// @Failure      502  {object}  utils.ErrorResponse "DISCORD_PATCH_FAILED"
// @Router       /api/order/grant [post]
func (h *OrderHandler) GrantAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GrantRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}
	if req.ChannelID == "" || req.CustomerDiscordID == "" {
		utils.WriteError(w, "MISSING_PARAMS", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	if err := h.svc.GrantAccess(ctx, req.ChannelID, req.CustomerDiscordID); err != nil {
		h.logger.ErrorContext(ctx, "failed to grant access",
			slog.String("channel_id", req.ChannelID), slog.Any("error", err))
		utils.WriteError(w, "DISCORD_PATCH_FAILED", http.StatusBadGateway)
		return
	}
	utils.WriteJSON(w, OKResponse{OK: true}, http.StatusOK)
}
