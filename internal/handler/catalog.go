package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sixlab/storefront/internal/entities"
	"github.com/sixlab/storefront/pkg/utils"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]entities.Product, error)
	GetProductByID(ctx context.Context, id string) (entities.Product, error)
}

type CatalogHandler struct {
	logger *slog.Logger
	svc    CatalogService
}

func NewCatalogHandler(logger *slog.Logger, svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		logger: logger.With(slog.String("handler", "catalog")),
		svc:    svc,
	}
}

func (h *CatalogHandler) Init(r chi.Router) {
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{id}", h.GetProduct)
}

// ListProducts returns the full catalog.
// @Summary  List products
// @Tags     catalog
// @Produce  json
// @Success  200  {array}  Product
// @Router   /api/products [get]
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.svc.ListProducts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		utils.WriteError(w, "SERVER_ERROR", http.StatusInternalServerError)
		return
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, ProductEntityToJSON(p))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

// GetProduct returns one product by id.
// @Summary  Get product
// @Tags     catalog
// @Produce  json
// @Param    id   path      string  true  "Product id"
// @Success  200  {object}  Product
// @Failure  404  {object}  utils.ErrorResponse
// @Router   /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	product, err := h.svc.GetProductByID(ctx, id)
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "NOT_FOUND", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get product",
			slog.String("id", id), slog.Any("error", err))
		utils.WriteError(w, "SERVER_ERROR", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusOK)
}
