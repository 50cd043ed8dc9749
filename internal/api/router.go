package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/studytrack/tracker/internal/api/handler"
	"github.com/studytrack/tracker/internal/api/middleware"
	"github.com/studytrack/tracker/internal/core/ports"
)

// Services bundles the domain services the HTTP boundary exposes.
type Services struct {
	Auth          ports.AuthService
	Users         ports.UserService
	Sessions      ports.SessionService
	Tasks         ports.TaskService
	Roles         ports.RoleService
	Notifications ports.NotificationService
}

type Options struct {
	JWTSecret string
	Logger    zerolog.Logger
	// Checks are the readiness probes keyed by dependency name.
	Checks map[string]handler.Check
	// Metrics mounts the prometheus middleware and /metrics.
	Metrics bool
	// Swagger mounts /swagger/*.
	Swagger bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	if opts.Metrics {
		e.Use(echoprometheus.NewMiddleware("tracker"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}
	if opts.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(opts.Checks).Readiness)

	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users, svc.Sessions)
	sessionHandler := handler.NewSessionHandler(svc.Sessions, svc.Tasks)
	taskHandler := handler.NewTaskHandler(svc.Tasks)
	roleHandler := handler.NewRoleHandler(svc.Roles)
	notificationHandler := handler.NewNotificationHandler(svc.Notifications)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/users", userHandler.Register)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(opts.JWTSecret))

	v1.GET("/users/:id", userHandler.Get)
	v1.PATCH("/users/:id", userHandler.Update)
	v1.DELETE("/users/:id", userHandler.Delete)
	v1.GET("/users/:id/sessions", userHandler.Sessions)

	v1.POST("/sessions", sessionHandler.Create)
	v1.GET("/sessions", sessionHandler.List)
	v1.GET("/sessions/:id", sessionHandler.Get)
	v1.PATCH("/sessions/:id", sessionHandler.Update)
	v1.DELETE("/sessions/:id", sessionHandler.Delete)
	v1.GET("/sessions/:id/members", sessionHandler.Members)
	v1.PUT("/sessions/:id/members/:user_id", sessionHandler.AddMember)
	v1.DELETE("/sessions/:id/members/:user_id", sessionHandler.RemoveMember)
	v1.GET("/sessions/:id/tasks", sessionHandler.Tasks)

	v1.POST("/tasks", taskHandler.Create)
	v1.GET("/tasks", taskHandler.List)
	v1.GET("/tasks/:id", taskHandler.Get)
	v1.PATCH("/tasks/:id", taskHandler.Update)
	v1.DELETE("/tasks/:id", taskHandler.Delete)

	v1.POST("/roles", roleHandler.Create)
	v1.GET("/roles", roleHandler.List)
	v1.GET("/roles/:id", roleHandler.Get)
	v1.PATCH("/roles/:id", roleHandler.Update)
	v1.DELETE("/roles/:id", roleHandler.Delete)

	v1.POST("/notifications", notificationHandler.Create)
	v1.GET("/notifications", notificationHandler.List)
	v1.GET("/notifications/:id", notificationHandler.Get)
	v1.POST("/notifications/:id/read", notificationHandler.MarkRead)
	v1.DELETE("/notifications/:id", notificationHandler.Delete)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			var ev *zerolog.Event
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Status >= 400:
				ev = log.Warn().Err(v.Error)
			default:
				ev = log.Info()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID)
			withActor(ev, c).Msg("request")
			return nil
		},
	})
}

// withActor adds the authenticated caller, if any, to a request log line.
func withActor(ev *zerolog.Event, c echo.Context) *zerolog.Event {
	for _, key := range []string{middleware.ActorIDKey, middleware.UsernameKey, middleware.RoleIDKey} {
		if v, ok := c.Get(key).(string); ok && v != "" {
			ev = ev.Str(key, v)
		}
	}
	return ev
}
