package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"helios/internal/delivery/http/response"
	"helios/internal/errors"
	"helios/internal/usecase"
)

// AdminHandler serves the back-office views.
type AdminHandler struct {
	uc usecase.AdminUsecase
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListClients returns customer accounts, filtered by the optional search
// query parameter.
func (h *AdminHandler) ListClients(c echo.Context) error {
	clients, err := h.uc.ListClients(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, clients, "")
}

// GetClient returns one customer with their sites and systems.
func (h *AdminHandler) GetClient(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid client id")
	}

	detail, err := h.uc.GetClient(c.Request().Context(), clientID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, detail, "")
}

// ListMessages returns the contact inbox, newest first.
func (h *AdminHandler) ListMessages(c echo.Context) error {
	messages, err := h.uc.ListMessages(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messages, "")
}

// MarkMessageRead flips a message's read-state flag.
func (h *AdminHandler) MarkMessageRead(c echo.Context) error {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message id")
	}

	if err := h.uc.MarkMessageRead(c.Request().Context(), messageID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Message marked as read")
}

// SeedProducts overwrites the catalog with the built-in product set.
func (h *AdminHandler) SeedProducts(c echo.Context) error {
	count, err := h.uc.SeedProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"seeded": count}, "Catalog seeded")
}
