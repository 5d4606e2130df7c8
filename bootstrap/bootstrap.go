// Package bootstrap builds the app for serverless entry points, which cannot import internal packages.
package bootstrap

import (
	"net/http"

	"gfg-stable-backend/internal/config"
	"gfg-stable-backend/internal/infrastructure/database"
	"gfg-stable-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App is a built application together with the handles it runs on.
type App struct {
	Fiber *fiber.App
	db    *gorm.DB
	rdb   *redis.Client
}

// New loads config, opens the database and applies migrations.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		return nil, err
	}
	a := &App{Fiber: app, db: db, rdb: rdb}
	if err := database.AutoMigrate(db); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// Handler exposes the app as a net/http handler.
func (a *App) Handler() http.Handler {
	return router.Handler(a.Fiber)
}

// Close releases the database and redis handles.
func (a *App) Close() error {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	return database.Close(a.db)
}
