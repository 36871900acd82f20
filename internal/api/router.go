package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/zerotrace/smart-facility/docs"
	"github.com/zerotrace/smart-facility/internal/api/handler"
	"github.com/zerotrace/smart-facility/internal/api/middleware"
	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
	"github.com/zerotrace/smart-facility/internal/infrastructure/http/handlers"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Logger      zerolog.Logger
	Auth        ports.AuthService
	Spaces      ports.SpaceService
	Bookings    ports.BookingService
	Tickets     ports.TicketService
	Attachments ports.AttachmentService
	// Activity is optional; /api/activity is not registered without it.
	Activity ports.ActivityService
	Health   *handlers.HealthHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("facility_http"))

	authenticated := middleware.Auth(deps.Auth)
	anyMember := middleware.RBAC(domain.RoleMember, domain.RoleManager, domain.RoleAdmin)
	staff := middleware.RBAC(domain.RoleManager, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	// Multipart overhead on top of the attachment ceiling; larger bodies are
	// refused with 413 before anything is spooled to disk.
	uploadLimit := echomiddleware.BodyLimit("8M")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authenticated)
	e.GET("/auth/me", authHandler.Me, middleware.OptionalAuth(deps.Auth))

	api := e.Group("/api")

	// --- Spaces ---
	spaceHandler := handler.NewSpaceHandler(deps.Spaces)
	api.GET("/spaces", spaceHandler.ListActive)
	api.GET("/spaces/all", spaceHandler.ListAll, authenticated, staff)
	api.GET("/spaces/:id", spaceHandler.Get)
	api.POST("/spaces", spaceHandler.Create, authenticated, adminOnly)
	api.PUT("/spaces/:id", spaceHandler.Update, authenticated, adminOnly)
	api.DELETE("/spaces/:id", spaceHandler.Delete, authenticated, adminOnly)

	// --- Bookings ---
	bookingHandler := handler.NewBookingHandler(deps.Bookings)
	bookings := api.Group("/bookings", authenticated)
	bookings.GET("", bookingHandler.Search)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.POST("", bookingHandler.Create, anyMember)
	bookings.PUT("/:id/status", bookingHandler.UpdateStatus, staff)

	// --- Tickets and attachments ---
	ticketHandler := handler.NewTicketHandler(deps.Tickets)
	attachmentHandler := handler.NewAttachmentHandler(deps.Attachments)
	tickets := api.Group("/tickets", authenticated)
	tickets.GET("", ticketHandler.Search)
	tickets.GET("/:id", ticketHandler.Get)
	tickets.POST("", ticketHandler.Create, anyMember)
	tickets.PUT("/:id/status", ticketHandler.UpdateStatus, staff)
	tickets.POST("/:ticketId/attachments", attachmentHandler.Upload, anyMember, uploadLimit)
	tickets.GET("/:ticketId/attachments", attachmentHandler.List)

	// --- Activity log ---
	if deps.Activity != nil {
		activityHandler := handler.NewActivityHandler(deps.Activity)
		api.GET("/activity", activityHandler.List, authenticated, staff)
	}

	// --- Pages ---
	e.GET("/", handler.Page(handler.PageDashboard))
	e.GET("/dashboard", handler.Page(handler.PageDashboard))
	e.GET("/spaces", handler.Page(handler.PageSpaces))
	e.GET("/bookings", handler.Page(handler.PageBookings))
	e.GET("/tickets", handler.Page(handler.PageTickets))
	e.GET("/auth/login", handler.Page(handler.PageLogin))
	e.GET("/auth/register", handler.Page(handler.PageRegister))

	// --- Health probes, metrics and docs (no auth required) ---
	health := deps.Health
	if health == nil {
		health = handlers.NewHealthHandler()
	}
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
