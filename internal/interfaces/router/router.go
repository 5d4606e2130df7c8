package router

import (
	"context"
	"net/http"
	"time"

	authsvc "gfg-stable-backend/internal/application/auth"
	"gfg-stable-backend/internal/application/emails"
	healthsvc "gfg-stable-backend/internal/application/health"
	horsesvc "gfg-stable-backend/internal/application/horses"
	taxsvc "gfg-stable-backend/internal/application/taxdocuments"
	"gfg-stable-backend/internal/config"
	"gfg-stable-backend/internal/constants"
	"gfg-stable-backend/internal/infrastructure/cache"
	"gfg-stable-backend/internal/infrastructure/database"
	authhandler "gfg-stable-backend/internal/interfaces/handlers/auth"
	healthhandler "gfg-stable-backend/internal/interfaces/handlers/health"
	horsehandler "gfg-stable-backend/internal/interfaces/handlers/horses"
	taxhandler "gfg-stable-backend/internal/interfaces/handlers/taxdocuments"
	"gfg-stable-backend/internal/middleware"
	"gfg-stable-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const multipartOverhead = 1 << 20

// Deps are the long-lived resources the app is built on. The caller owns
// their lifecycle; New never opens or closes them.
type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client // optional
	Emails  emails.Sender // nil selects a transport from cfg
	Storage taxsvc.Storage
}

// CreateApp opens the database (and redis when REDIS_URL is set) and builds
// the app on them. The caller closes the returned handles.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	db, err := database.Open(cfg.DatabaseURL, database.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		IdleTimeout:  cfg.DBIdleTimeout,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout(cfg))
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, err
	}
	log.Info().Msg("Database connected")

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = cache.Open(context.Background(), cfg.RedisURL)
		if err != nil {
			_ = database.Close(db)
			return nil, nil, nil, err
		}
		log.Info().Msg("Redis connected")
	}

	app, err := New(cfg, Deps{DB: db, Redis: rdb})
	if err != nil {
		_ = database.Close(db)
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, nil, nil, err
	}
	return app, db, rdb, nil
}

func connectTimeout(cfg *config.Config) time.Duration {
	if cfg.DBConnectTimeout > 0 {
		return cfg.DBConnectTimeout
	}
	return 2 * time.Second
}

// New wires middleware, services and routes onto deps.
func New(cfg *config.Config, deps Deps) (*fiber.App, error) {
	db, rdb := deps.DB, deps.Redis

	bodyLimit := int(cfg.MaxFileSize) + multipartOverhead
	if cfg.MaxFileSize <= 0 {
		bodyLimit = int(taxsvc.DefaultMaxFileSize) + multipartOverhead
	}
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(rdb),
		BodyLimit:             bodyLimit,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.CORSOrigins}))
	if cfg.IsProduction() {
		app.Use(middleware.HTTPSRedirect())
	}
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	metrics := middleware.NewMetrics()
	app.Use(metrics.Handler())
	app.Use(middleware.HealthMarker(rdb))
	var limiterStorage fiber.Storage
	if rdb != nil {
		limiterStorage = cache.NewStorage(rdb, "gfg:ratelimit:")
	}
	app.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Window:  cfg.RateLimitWindow,
		Max:     cfg.RateLimitMax,
		Storage: limiterStorage,
	}))

	// Health and metrics
	checker := &healthsvc.Checker{Redis: rdb, FrontendURL: cfg.FrontendURL, Started: time.Now()}
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		checker.DB = sqlDB
	}
	hh := &healthhandler.Handlers{Checker: checker, HealthAdminKey: cfg.HealthAdminKey}
	app.Get("/health", hh.Ping)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/status", hh.Dashboard)
	app.Get("/health/errors", hh.Errors)
	app.Get("/health/reset", hh.Reset)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Services
	sender := deps.Emails
	if sender == nil {
		sender = emails.New(emails.Options{
			BrevoAPIKey: cfg.SendinblueAPIKey,
			SMTPHost:    cfg.SMTPHost,
			SMTPPort:    cfg.SMTPPort,
			SMTPUser:    cfg.SMTPUser,
			SMTPPass:    cfg.SMTPPass,
			SMTPSecure:  cfg.SMTPSecure,
			FromEmail:   cfg.FromEmail,
			AdminEmail:  cfg.AdminEmail,
			FrontendURL: cfg.FrontendURL,
		})
	}
	store := deps.Storage
	if store == nil {
		local, err := taxsvc.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		store = local
	}
	as := &authsvc.Service{
		DB:     db,
		Tokens: authsvc.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn),
		Emails: sender,
	}
	hs := &horsesvc.Service{DB: db}
	ts := &taxsvc.Service{DB: db, Storage: store, MaxFileSize: cfg.MaxFileSize}

	authn := middleware.RequireAuth(as)
	api := app.Group("/api")

	// Auth
	ah := &authhandler.Handlers{Service: as}
	manageUsers := middleware.AuthorizePermission(constants.ManageUsers)
	ag := api.Group("/auth")
	ag.Post("/register", ah.Register)
	ag.Post("/login", ah.Login)
	ag.Post("/forgot-password", ah.ForgotPassword)
	ag.Post("/reset-password", ah.ResetPassword)
	ag.Post("/logout", authn, ah.Logout)
	ag.Get("/me", authn, ah.Me)
	ag.Put("/profile", authn, ah.UpdateProfile)
	ag.Get("/users", authn, manageUsers, ah.ListUsers)
	ag.Get("/members", authn, manageUsers, ah.ListMembers)
	ag.Put("/users/:id/role", authn, manageUsers, ah.UpdateUserRole)
	ag.Delete("/users/:id", authn, manageUsers, ah.DeactivateUser)
	ag.Post("/admin/create-member", authn, manageUsers, ah.CreateMember)
	ag.Put("/members/:id", authn, manageUsers, ah.UpdateMember)
	ag.Delete("/members/:id", authn, manageUsers, ah.DeleteMember)

	// Horses
	horses := &horsehandler.Handlers{Service: hs}
	manageHorses := middleware.AuthorizePermission(constants.ManageHorses)
	hg := api.Group("/horses", authn, middleware.AuthorizePermission(constants.ViewHorses))
	hg.Get("/", horses.List)
	hg.Get("/stats/overview", horses.Stats)
	hg.Get("/member/:memberId", middleware.AuthorizeSelfOrPermission("memberId", constants.ViewAnyHoldings), horses.ByMember)
	hg.Get("/:id", horses.Get)
	hg.Post("/", manageHorses, horses.Create)
	hg.Put("/:id", manageHorses, horses.Update)
	hg.Delete("/:id", manageHorses, horses.Delete)
	hg.Post("/:id/purchase", middleware.AuthorizePermission(constants.PurchaseShares), horses.Purchase)
	hg.Patch("/:id/performance", middleware.AuthorizePermission(constants.UpdatePerformance), horses.UpdatePerformance)
	hg.Patch("/:id/financials", middleware.AuthorizePermission(constants.ManageFinancials), horses.UpdateFinancials)

	// Tax documents
	docs := &taxhandler.Handlers{Service: ts}
	manageDocs := middleware.AuthorizePermission(constants.ManageTaxDocuments)
	ownDocs := middleware.AuthorizeSelfOrPermission("memberId", constants.ViewAnyTaxDocuments)
	tg := api.Group("/tax-documents", authn, middleware.AuthorizePermission(constants.ViewTaxDocuments))
	tg.Post("/upload/:memberId", manageDocs, docs.Upload)
	tg.Get("/member/:memberId", ownDocs, docs.ListByMember)
	tg.Get("/member/:memberId/year/:year", ownDocs, docs.ListByYear)
	tg.Get("/member/:memberId/type/:type", ownDocs, docs.ListByType)
	tg.Get("/:documentId/download", docs.Download)
	tg.Delete("/:documentId", manageDocs, docs.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return response.Error(c, "Route not found", fiber.StatusNotFound, nil)
	})

	return app, nil
}

// Handler exposes the app as a net/http handler for serverless entry points.
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
