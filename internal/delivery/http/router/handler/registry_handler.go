package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	deliverycontext "helios/internal/delivery/context"
	"helios/internal/delivery/http/response"
	"helios/internal/domain/entity"
	"helios/internal/errors"
	"helios/internal/usecase"
)

// RegistryHandler serves the caller's sites and installed systems.
type RegistryHandler struct {
	uc usecase.RegistryUsecase
}

// NewRegistryHandler is the constructor for RegistryHandler, injected by Fx.
func NewRegistryHandler(uc usecase.RegistryUsecase) *RegistryHandler {
	return &RegistryHandler{uc: uc}
}

// ListSites returns every site owned by the caller.
func (h *RegistryHandler) ListSites(c echo.Context) error {
	session := deliverycontext.GetSession(c)

	sites, err := h.uc.ListSites(c.Request().Context(), session.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sites, "")
}

type createSiteRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Address     string `json:"address"`
	City        string `json:"city"`
	AccessNotes string `json:"accessNotes"`
	IsPrimary   bool   `json:"isPrimary"`
}

// CreateSite registers a new site for the caller.
func (h *RegistryHandler) CreateSite(c echo.Context) error {
	session := deliverycontext.GetSession(c)

	var req createSiteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid site input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	site, err := h.uc.CreateSite(c.Request().Context(), usecase.CreateSiteInput{
		OwnerID:     session.UserID,
		Name:        req.Name,
		Type:        entity.SiteType(req.Type),
		Address:     req.Address,
		City:        req.City,
		AccessNotes: req.AccessNotes,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, site, "Site registered")
}

// DeleteSite removes a caller-owned site.
func (h *RegistryHandler) DeleteSite(c echo.Context) error {
	session := deliverycontext.GetSession(c)

	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid site id")
	}

	if err := h.uc.DeleteSite(c.Request().Context(), session.UserID, siteID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Site deleted")
}

// ListSystems returns every system owned by the caller.
func (h *RegistryHandler) ListSystems(c echo.Context) error {
	session := deliverycontext.GetSession(c)

	systems, err := h.uc.ListSystems(c.Request().Context(), session.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, systems, "")
}

type createSystemRequest struct {
	Name        string     `json:"name" validate:"required"`
	Type        string     `json:"type" validate:"required"`
	Status      string     `json:"status"`
	SiteID      string     `json:"siteId" validate:"required"`
	Notes       string     `json:"notes"`
	InstalledAt *time.Time `json:"installedAt"`
}

// CreateSystem registers a new installed system for the caller.
func (h *RegistryHandler) CreateSystem(c echo.Context) error {
	session := deliverycontext.GetSession(c)

	var req createSystemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid system input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	siteID, err := uuid.Parse(req.SiteID)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid site id")
	}

	system, err := h.uc.CreateSystem(c.Request().Context(), usecase.CreateSystemInput{
		OwnerID:     session.UserID,
		Name:        req.Name,
		Type:        entity.SystemType(req.Type),
		Status:      entity.SystemStatus(req.Status),
		SiteID:      siteID,
		Notes:       req.Notes,
		InstalledAt: req.InstalledAt,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, system, "System registered")
}

// DeleteSystem removes a caller-owned system.
func (h *RegistryHandler) DeleteSystem(c echo.Context) error {
	session := deliverycontext.GetSession(c)

	systemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid system id")
	}

	if err := h.uc.DeleteSystem(c.Request().Context(), session.UserID, systemID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "System deleted")
}
