package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sbworks/marketplace/docs"
	"github.com/sbworks/marketplace/internal/api/handler"
	"github.com/sbworks/marketplace/internal/api/middleware"
	"github.com/sbworks/marketplace/internal/chat"
	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

// Services are the core use cases the HTTP layer exposes.
type Services struct {
	Auth      ports.AuthService
	Profiles  ports.ProfileService
	Projects  ports.ProjectService
	Companies ports.CompanyService
}

// Options carries the optional pieces of the router. Nil fields switch the
// corresponding feature off.
type Options struct {
	AllowedOrigins []string
	Limiter        middleware.Limiter
	Chat           *chat.Handler
	Readiness      map[string]handler.Check
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "marketplace",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/ws/chat"
		},
	}))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	profileHandler := handler.NewProfileHandler(svc.Profiles)
	projectHandler := handler.NewProjectHandler(svc.Projects)
	companyHandler := handler.NewCompanyHandler(svc.Companies)

	requireAuth := middleware.Auth(svc.Auth)
	projectOwners := middleware.RBAC(domain.UsertypeClient, domain.UsertypeAdmin)

	limited := func(route string) []echo.MiddlewareFunc {
		if opts.Limiter == nil {
			return nil
		}
		return []echo.MiddlewareFunc{middleware.RateLimit(opts.Limiter, route, log)}
	}

	// --- Auth routes ---
	e.POST("/register", authHandler.Register, limited("register")...)
	e.POST("/login", authHandler.Login, limited("login")...)
	e.POST("/logout", authHandler.Logout, requireAuth)
	e.GET("/me", authHandler.Me, requireAuth)

	// --- Projects ---
	e.GET("/fetch-projects", projectHandler.List)
	e.POST("/projects", projectHandler.Create, requireAuth, projectOwners)
	e.GET("/projects/:id", projectHandler.Get)
	e.PATCH("/projects/:id/status", projectHandler.UpdateStatus, requireAuth, projectOwners)

	// --- Freelancer profiles ---
	e.GET("/fetch-freelancer/:id", profileHandler.Fetch, requireAuth)
	e.POST("/update-freelancer", profileHandler.Update, requireAuth)

	// --- Companies ---
	e.GET("/companies", companyHandler.List)

	// --- Chat ---
	if opts.Chat != nil {
		e.GET("/ws/chat", opts.Chat.Connect)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
