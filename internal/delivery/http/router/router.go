// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"helios/internal/delivery/http/middleware"
	"helios/internal/delivery/http/router/handler"
	"helios/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	AccountHandler  *handler.AccountHandler
	CatalogHandler  *handler.CatalogHandler
	RegistryHandler *handler.RegistryHandler
	AdminHandler    *handler.AdminHandler
	MessageHandler  *handler.MessageHandler
	StreamHandler   *handler.StreamHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler  *handler.AccountHandler
	catalogHandler  *handler.CatalogHandler
	registryHandler *handler.RegistryHandler
	adminHandler    *handler.AdminHandler
	messageHandler  *handler.MessageHandler
	streamHandler   *handler.StreamHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:  params.AccountHandler,
		catalogHandler:  params.CatalogHandler,
		registryHandler: params.RegistryHandler,
		adminHandler:    params.AdminHandler,
		messageHandler:  params.MessageHandler,
		streamHandler:   params.StreamHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public storefront routes
	e.GET("/catalog/products", r.catalogHandler.ListProducts)
	e.POST("/contact/messages", r.messageHandler.Submit)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.accountHandler.Signup)
		authGroup.POST("/login", r.accountHandler.Login)
		authGroup.POST("/google", r.accountHandler.GoogleSignIn)
		authGroup.POST("/refresh", r.accountHandler.Refresh)
		authGroup.POST("/logout", r.accountHandler.Logout)
		authGroup.POST("/password-reset", r.accountHandler.RequestPasswordReset)
		authGroup.POST("/password-reset/confirm", r.accountHandler.ConfirmPasswordReset)
	}

	// Customer routes that require an established identity
	accountGroup := e.Group("/account")
	accountGroup.Use(r.authMiddleware.EstablishSession)
	accountGroup.Use(r.authMiddleware.RequireAuthenticated())
	{
		accountGroup.GET("/profile", r.accountHandler.GetProfile)
		accountGroup.PATCH("/profile", r.accountHandler.UpdateProfile)
		accountGroup.POST("/photo", r.accountHandler.UploadPhoto)
		accountGroup.POST("/reauthenticate", r.accountHandler.Reauthenticate)
		accountGroup.POST("/password", r.accountHandler.ChangePassword)
		accountGroup.DELETE("", r.accountHandler.DeleteAccount)
	}

	registryGroup := e.Group("/registry")
	// The stream authenticates itself from the token query parameter.
	registryGroup.GET("/stream", r.streamHandler.RegistryStream)
	registryGroup.Use(r.authMiddleware.EstablishSession)
	registryGroup.Use(r.authMiddleware.RequireAuthenticated())
	{
		registryGroup.GET("/sites", r.registryHandler.ListSites)
		registryGroup.POST("/sites", r.registryHandler.CreateSite)
		registryGroup.DELETE("/sites/:id", r.registryHandler.DeleteSite)
		registryGroup.GET("/systems", r.registryHandler.ListSystems)
		registryGroup.POST("/systems", r.registryHandler.CreateSystem)
		registryGroup.DELETE("/systems/:id", r.registryHandler.DeleteSystem)
	}

	// Back-office routes that require the admin role
	adminGroup := e.Group("/admin")
	adminGroup.GET("/stream", r.streamHandler.AdminStream)
	adminGroup.Use(r.authMiddleware.EstablishSession)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/clients", r.adminHandler.ListClients)
		adminGroup.GET("/clients/:id", r.adminHandler.GetClient)
		adminGroup.GET("/messages", r.adminHandler.ListMessages)
		adminGroup.PATCH("/messages/:id/read", r.adminHandler.MarkMessageRead)
		adminGroup.POST("/products/seed", r.adminHandler.SeedProducts)
	}
}
