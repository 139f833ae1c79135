package router

import (
	"fmt"

	anasvc "portfolio-backend/internal/application/analytics"
	leasesvc "portfolio-backend/internal/application/leases"
	occsvc "portfolio-backend/internal/application/occupancy"
	propsvc "portfolio-backend/internal/application/properties"
	txsvc "portfolio-backend/internal/application/transactions"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/infrastructure/database"
	anahandler "portfolio-backend/internal/interfaces/handlers/analytics"
	authhandler "portfolio-backend/internal/interfaces/handlers/auth"
	healthhandler "portfolio-backend/internal/interfaces/handlers/health"
	leasehandler "portfolio-backend/internal/interfaces/handlers/leases"
	occhandler "portfolio-backend/internal/interfaces/handlers/occupancy"
	prophandler "portfolio-backend/internal/interfaces/handlers/properties"
	txhandler "portfolio-backend/internal/interfaces/handlers/transactions"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/pkg/constants"
	"portfolio-backend/internal/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateApp wires the database, Redis, scoring engine, middleware and routes.
// Without REDIS_URL there are no sessions, so every /api/v1 route answers 401.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	scoringCfg, err := config.LoadScoring(cfg.ScoringConfigFile)
	if err != nil {
		return nil, nil, nil, err
	}
	engine, err := scoring.NewEngine(scoringCfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("scoring config: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opts)
	} else {
		log.Warn().Msg("REDIS_URL not set: sessions and health counters are disabled")
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.NewErrorHandler(rdb),
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
		AllowLocal:    cfg.AllowCrossSiteDev && cfg.Env != "production",
	}))
	if rdb != nil {
		app.Use(middleware.HealthMarker(rdb))
		app.Use(middleware.Session(rdb))
	}

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	if cfg.DatabaseURL == "" {
		return nil, nil, nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		hh.DB = sqlDB
	}

	api := app.Group("/api/v1", middleware.RequireAuth())
	manage := middleware.AuthorizePermission(constants.ManagePortfolio)
	view := middleware.AuthorizePermission(constants.ViewData)
	remove := middleware.AuthorizePermission(constants.DeleteRecords)

	authh := &authhandler.Handlers{}
	api.Get("/auth/me", authh.Me)

	// Properties
	ph := &prophandler.Handlers{Service: &propsvc.Service{DB: db}}
	pg := api.Group("/properties")
	pg.Post("/create-property", manage, ph.CreateProperty)
	pg.Post("/bulk", manage, ph.BulkCreate)
	pg.Get("/get-properties", view, ph.GetProperties)
	pg.Get("/:property_id", view, ph.GetProperty)
	pg.Put("/:property_id", manage, ph.UpdateProperty)
	pg.Delete("/:property_id", remove, ph.DeleteProperty)

	// Leases
	lh := &leasehandler.Handlers{Service: &leasesvc.Service{DB: db}}
	lg := api.Group("/leases")
	lg.Post("/create-lease", manage, lh.CreateLease)
	lg.Get("/get-leases", view, lh.GetLeases)
	lg.Delete("/:lease_id", remove, lh.DeleteLease)

	// Transactions
	th := &txhandler.Handlers{Service: &txsvc.Service{DB: db}}
	tg := api.Group("/transactions")
	tg.Post("/create-transaction", manage, th.CreateTransaction)
	tg.Get("/get-transactions", view, th.GetTransactions)

	// Occupancy
	oh := &occhandler.Handlers{Service: &occsvc.Service{DB: db}}
	og := api.Group("/occupancy")
	og.Post("/create-reading", manage, oh.CreateReading)
	og.Get("/get-readings", view, oh.GetReadings)

	// Analytics
	ah := &anahandler.Handlers{
		Service:         &anasvc.Service{DB: db, Engine: engine},
		DefaultStrategy: cfg.DefaultStrategy,
		SaveAnalyses:    cfg.SaveAnalyses,
	}
	ag := api.Group("/analytics", view)
	ag.Post("/portfolio", ah.ScorePortfolio)
	ag.Get("/portfolio", ah.AnalyzePortfolio)
	ag.Post("/reconcile", ah.ReconcileRecords)
	ag.Get("/reconcile", ah.ReconcileStored)
	ag.Get("/forecast", ah.Forecast)
	ag.Get("/occupancy", ah.Occupancy)
	ag.Get("/lease-risk", ah.LeaseRisk)
	ag.Get("/history", ah.History)

	return app, db, rdb, nil
}
