package api

import (
	"net/http"

	"github.com/focusflowhq/backend/internal/access"
	"github.com/focusflowhq/backend/internal/api/handler"
	custommw "github.com/focusflowhq/backend/internal/api/middleware"
	"github.com/focusflowhq/backend/internal/clock"
	"github.com/focusflowhq/backend/internal/config"
	"github.com/focusflowhq/backend/internal/repository/postgres"
	"github.com/focusflowhq/backend/internal/repository/redis"
	"github.com/focusflowhq/backend/internal/security"
	"github.com/focusflowhq/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	clk := clock.System()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	goalRepo := postgres.NewGoalRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	trackingRepo := postgres.NewTrackingRepository(db)
	shareRepo := postgres.NewShareRepository(db)
	permissionRepo := postgres.NewPermissionRepository(db)
	accessRepo := postgres.NewAccessRepository(db)

	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)

	// Access resolver
	resolver := access.NewResolver(accessRepo)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, clk)
	workspaceService := service.NewWorkspaceService(workspaceRepo, userRepo, clk)
	goalService := service.NewGoalService(goalRepo, taskRepo, userRepo, clk)
	taskService := service.NewTaskService(taskRepo, clk)
	trackingService := service.NewTrackingService(trackingRepo, userRepo, clk)
	shareService := service.NewShareService(shareRepo, permissionRepo, workspaceRepo, userRepo, clk)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	goalHandler := handler.NewGoalHandler(goalService, resolver)
	taskHandler := handler.NewTaskHandler(taskService, trackingService, goalService, resolver)
	shareHandler := handler.NewShareHandler(shareService)

	authMiddleware := custommw.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := custommw.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/auth/me", authHandler.Me)
			r.Put("/auth/timezone", authHandler.UpdateTimezone)

			// Workspace routes
			r.Route("/workspaces", func(r chi.Router) {
				r.Get("/", workspaceHandler.List)
				r.Post("/", workspaceHandler.Create)
				r.Get("/groups/unique", workspaceHandler.Groups)

				r.Route("/{workspaceID}", func(r chi.Router) {
					r.With(custommw.RequirePermission(resolver, access.ResourceWorkspace, "workspaceID", access.ActionList)).
						Get("/", workspaceHandler.Get)
					r.With(custommw.RequirePermission(resolver, access.ResourceWorkspace, "workspaceID", access.ActionEdit)).
						Put("/", workspaceHandler.Update)
					r.With(custommw.RequirePermission(resolver, access.ResourceWorkspace, "workspaceID", access.ActionDelete)).
						Delete("/", workspaceHandler.Delete)

					// Sharing: owner checks live in the service
					r.Post("/share", shareHandler.Share)
					r.Post("/share/{shareID}/respond", shareHandler.Respond)
					r.Delete("/share/{userID}", shareHandler.Revoke)
					r.Put("/permissions/{userID}", shareHandler.UpdatePermissions)
					r.Get("/shared-users", shareHandler.SharedUsers)
				})
			})

			// Goal routes
			r.Route("/goals", func(r chi.Router) {
				r.Get("/", goalHandler.List)
				r.Post("/", goalHandler.Create)

				r.Route("/{goalID}", func(r chi.Router) {
					r.With(custommw.RequirePermission(resolver, access.ResourceGoal, "goalID", access.ActionList)).
						Get("/", goalHandler.Get)
					r.With(custommw.RequirePermission(resolver, access.ResourceGoal, "goalID", access.ActionEdit)).
						Put("/", goalHandler.Update)
					r.With(custommw.RequirePermission(resolver, access.ResourceGoal, "goalID", access.ActionDelete)).
						Delete("/", goalHandler.Delete)
				})
			})

			// Task and tracking routes
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Get("/summary", taskHandler.Summary)
				r.With(custommw.RequirePermission(resolver, access.ResourceGoal, "goalID", access.ActionList)).
					Get("/daily-budget/{goalID}", taskHandler.DailyBudget)

				r.Route("/{taskID}", func(r chi.Router) {
					// Stop reads the path segment as a tracking record id. The
					// record lookup is scoped to the caller, so it skips the
					// permission middleware.
					r.Post("/stop", taskHandler.Stop)

					r.With(custommw.RequirePermission(resolver, access.ResourceTask, "taskID", access.ActionList)).
						Get("/", taskHandler.Get)
					r.With(custommw.RequirePermission(resolver, access.ResourceTask, "taskID", access.ActionEdit)).
						Put("/", taskHandler.Update)
					r.With(custommw.RequirePermission(resolver, access.ResourceTask, "taskID", access.ActionDelete)).
						Delete("/", taskHandler.Delete)
					r.With(custommw.RequirePermission(resolver, access.ResourceTask, "taskID", access.ActionSubmitRecord)).
						Post("/start", taskHandler.Start)
					r.With(custommw.RequirePermission(resolver, access.ResourceTask, "taskID", access.ActionSubmitRecord)).
						Post("/manual-record", taskHandler.ManualRecord)
				})
			})

			// Invitations
			r.Get("/shares/my-invitations", shareHandler.MyInvitations)
		})
	})

	return r
}
