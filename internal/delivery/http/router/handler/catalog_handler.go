package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"helios/internal/delivery/http/response"
	"helios/internal/errors"
	"helios/internal/usecase"
)

// CatalogHandler serves the public product catalog.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListProducts returns the catalog, served from cache when fresh.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.FetchProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	state := h.uc.State()

	return response.Success(c, http.StatusOK, map[string]any{
		"products":    products,
		"lastFetched": state.LastFetched,
		"error":       state.Error,
	}, "")
}
