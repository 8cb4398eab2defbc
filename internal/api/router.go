package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gatherly/eventhub/internal/api/handler"
	"github.com/gatherly/eventhub/internal/api/middleware"
	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/service"
	"github.com/gatherly/eventhub/internal/infrastructure/db/postgres"
	"github.com/gatherly/eventhub/internal/pkg/password"
	"github.com/gatherly/eventhub/internal/pkg/token"
)

// Deps carries the external resources the router assembles the application
// around. Limiter may be nil, in which case login throttling is disabled.
type Deps struct {
	DB      *gorm.DB
	Redis   *goredis.Client
	Tokens  *token.Manager
	Hasher  *password.Hasher
	Limiter middleware.Limiter
	Logger  zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("eventhub"))

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(d.DB)
	roleRepo := postgres.NewRoleRepository(d.DB)
	permRepo := postgres.NewPermissionRepository(d.DB)
	eventRepo := postgres.NewEventRepository(d.DB)
	activityRepo := postgres.NewActivityRepository(d.DB)
	loginRepo := postgres.NewLoginRepository(d.DB)
	passwordRepo := postgres.NewPasswordRepository(d.DB)
	tx := postgres.NewTxManager(d.DB)

	// --- Services ---
	activityRec := service.NewActivityRecorder(activityRepo, d.Logger)
	loginRec := service.NewLoginRecorder(loginRepo, d.Logger)
	passwordRec := service.NewPasswordRecorder(passwordRepo, d.Logger)

	authService := service.NewAuthService(userRepo, loginRec, d.Tokens, d.Hasher, d.Logger)
	userService := service.NewUserService(userRepo, roleRepo, eventRepo, activityRec, passwordRec, d.Hasher, tx, d.Logger)
	roleService := service.NewRoleService(roleRepo, permRepo, userRepo, activityRec, tx, d.Logger)
	permService := service.NewPermissionService(permRepo, activityRec, tx, d.Logger)
	eventService := service.NewEventService(eventRepo, userRepo, activityRec, tx, d.Logger)
	historyService := service.NewHistoryService(activityRepo, loginRepo, passwordRepo, userRepo, d.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	permHandler := handler.NewPermissionHandler(permService)
	eventHandler := handler.NewEventHandler(eventService)
	historyHandler := handler.NewHistoryHandler(historyService)

	auth := middleware.Auth(d.Tokens, userRepo)
	superAdmin := middleware.RequireRole(domain.RoleSuperAdmin)
	adminRead := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin)
	anyRole := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleAttendee)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, middleware.LoginRateLimit(d.Limiter, d.Logger))
	e.POST("/auth/logout", authHandler.Logout, auth, anyRole)

	// --- User routes ---
	users := e.Group("/users", auth)
	users.POST("", userHandler.Create, superAdmin)
	users.GET("", userHandler.GetAll, adminRead)
	users.GET("/active", userHandler.GetActive, adminRead)
	users.GET("/username/:username", userHandler.GetByUsername, adminRead)
	users.GET("/:id", userHandler.GetByID, adminRead)
	users.PUT("/:id", userHandler.Update, superAdmin)
	users.DELETE("/:id", userHandler.Delete, superAdmin)
	users.PATCH("/:id/activate", userHandler.Activate, superAdmin)
	users.PATCH("/:id/deactivate", userHandler.Deactivate, superAdmin)
	users.PATCH("/:id/reset-password", userHandler.ResetPassword, superAdmin)
	users.POST("/change-my-password", userHandler.ChangeMyPassword, anyRole)

	// --- Role routes ---
	roles := e.Group("/roles", auth)
	roles.POST("", roleHandler.Create, superAdmin)
	roles.GET("", roleHandler.GetAll, adminRead)
	roles.GET("/with-permissions", roleHandler.GetAllWithPermissions, adminRead)
	roles.GET("/name/:name", roleHandler.GetByName, adminRead)
	roles.GET("/:id", roleHandler.GetByID, adminRead)
	roles.GET("/:id/with-permissions", roleHandler.GetByIDWithPermissions, adminRead)
	roles.PUT("/:id", roleHandler.Update, superAdmin)
	roles.DELETE("/:id", roleHandler.Delete, superAdmin)
	roles.POST("/assign-permissions", roleHandler.AssignPermissions, superAdmin)
	roles.POST("/:roleId/permissions/:permissionId", roleHandler.AddPermission, superAdmin)
	roles.DELETE("/:roleId/permissions/:permissionId", roleHandler.RemovePermission, superAdmin)

	// --- Permission routes ---
	perms := e.Group("/permissions", auth)
	perms.POST("", permHandler.Create, superAdmin)
	perms.GET("", permHandler.GetAll, adminRead)
	perms.GET("/name/:name", permHandler.GetByName, adminRead)
	perms.GET("/:id", permHandler.GetByID, adminRead)
	perms.PUT("/:id", permHandler.Update, superAdmin)
	perms.DELETE("/:id", permHandler.Delete, superAdmin)

	// --- Event routes (every authenticated role) ---
	events := e.Group("/events", auth, anyRole)
	events.POST("", eventHandler.Create)
	events.GET("", eventHandler.GetAll)
	events.GET("/public", eventHandler.GetAllPublic)
	events.GET("/my-organized", eventHandler.GetMyOrganized)
	events.GET("/my-invitations", eventHandler.GetMyInvitations)
	events.GET("/upcoming", eventHandler.GetUpcoming)
	events.GET("/past", eventHandler.GetPast)
	events.GET("/today", eventHandler.GetToday)
	events.GET("/search/location", eventHandler.SearchByLocation)
	events.POST("/invite", eventHandler.Invite)
	events.DELETE("/invite", eventHandler.RemoveInvitations)
	events.GET("/:id", eventHandler.GetByID)
	events.PUT("/:id", eventHandler.Update)
	events.DELETE("/:id", eventHandler.Delete)

	// --- History routes ---
	history := e.Group("/history", auth)
	history.GET("/my-activities", historyHandler.MyActivities, anyRole)
	history.GET("/my-logins", historyHandler.MyLogins, anyRole)
	history.GET("/my-password-changes", historyHandler.MyPasswordChanges, anyRole)
	history.GET("/activities/user/:username", historyHandler.ActivitiesByUsername, adminRead)
	history.GET("/activities/type/:activityTypeCode", historyHandler.ActivitiesByType, superAdmin)
	history.GET("/logins/user/:userId", historyHandler.LoginsByUserID, adminRead)
	history.GET("/password-changes/user/:userId", historyHandler.PasswordChangesByUserID, superAdmin)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
