package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/emuhub/emuhub/docs"
	"github.com/emuhub/emuhub/internal/api/handler"
	"github.com/emuhub/emuhub/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Catalog ports.CatalogService
	Saves   ports.SaveService
	Users   ports.UserService

	RomsDir     string
	SavesDir    string
	ScanTimeout time.Duration

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("emuhub"))

	// --- Handlers ---
	catalogHandler := handler.NewCatalogHandler(deps.Catalog, deps.ScanTimeout)
	saveHandler := handler.NewSaveHandler(deps.Saves)
	authHandler := handler.NewAuthHandler(deps.Users)

	// --- API routes ---
	// Every /api response is CORS-open; clients run the emulator frontend
	// from arbitrary origins.
	apiGroup := e.Group("/api", corsOpen)
	apiGroup.GET("/list-games", catalogHandler.ListGames)
	apiGroup.POST("/save-state", saveHandler.SaveState)
	apiGroup.GET("/load-state", saveHandler.LoadState)
	apiGroup.GET("/list-slots", saveHandler.ListSlots)
	apiGroup.POST("/register", authHandler.Register)
	apiGroup.POST("/login", authHandler.Login)
	apiGroup.OPTIONS("/*", preflight)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	storageHealth := handler.NewStorageHealthHandler(deps.RomsDir, deps.SavesDir)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", storageHealth.Readiness)

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// corsOpen adds the permissive CORS headers every /api response carries.
func corsOpen(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set(echo.HeaderAccessControlAllowOrigin, "*")
		h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
		h.Set(echo.HeaderAccessControlAllowHeaders, echo.HeaderContentType)
		return next(c)
	}
}

// preflight answers OPTIONS on any /api path with 200 and no body.
func preflight(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
