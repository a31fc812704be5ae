package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/uptrace/bun"

	"github.com/angkomuhtar/simple-api-express/configs"
	"github.com/angkomuhtar/simple-api-express/helpers"
	"github.com/angkomuhtar/simple-api-express/models"
	"github.com/angkomuhtar/simple-api-express/packages"
)

func main() {
	if err := run(); err != nil {
		packages.Logrus("fatal", err)
	}
}

// run returns instead of exiting so every deferred Close has happened by the
// time main logs the failure.
func run() error {
	env := new(configs.Environment)

	if err := packages.ViperRead(".env", env); err != nil {
		return err
	}

	packages.LogrusSetup(env.IsProduction(), env.LOG_LEVEL)

	app, err := NewApp(context.Background(), env)
	if err != nil {
		return err
	}
	defer app.Close()

	packages.Logrus("info", "Server is running on port: %s", env.PORT)

	err = packages.Graceful(func() *packages.GracefulConfig {
		return &packages.GracefulConfig{Handler: app.router, Port: env.PORT}
	})

	if err != nil {
		return fmt.Errorf("server is not running: %w", err)
	}

	return nil
}

type app struct {
	db     *bun.DB
	broker packages.IKafka
	router *chi.Mux
}

// NewApp opens storage and the event broker and wires the router. Anything
// opened before a failing step is closed again.
func NewApp(ctx context.Context, env *configs.Environment) (*app, error) {
	parser := helpers.NewParser()

	gorutinePoolSize, err := parser.ToInt(env.GORUTINE_POOL_SIZE)
	if err != nil {
		return nil, fmt.Errorf("invalid GORUTINE_POOL_SIZE: %w", err)
	}

	db, err := packages.Database(env.DSN, !env.IsProduction())
	if err != nil {
		return nil, err
	}

	if err := packages.Sync(ctx, db, (*models.User)(nil)); err != nil {
		db.Close()
		return nil, fmt.Errorf("database sync is error: %w", err)
	}

	broker, err := packages.NewKafka(env.Brokers(), gorutinePoolSize)
	if err != nil {
		db.Close()
		return nil, err
	}

	service := NewService(db, broker, env.KAFKA_TOPIC)

	return &app{db: db, broker: broker, router: NewRouter(NewHandler(service))}, nil
}

// Close drains the broker before the database goes away.
func (a *app) Close() error {
	return errors.Join(a.broker.Close(), a.db.Close())
}

func NewRouter(handler IHandler) *chi.Mux {
	router := chi.NewMux()

	router.Use(middleware.Recoverer)
	router.Use(packages.RequestLogger)
	router.Use(packages.Cors())

	router.Get("/", handler.Ping)
	router.Get("/users", handler.ListUsers)
	router.Post("/users", handler.CreateUser)
	router.Get("/users/{id}", handler.GetUser)
	router.Put("/users/{id}", handler.UpdateUser)
	router.Delete("/users/{id}", handler.DeleteUser)

	return router
}
