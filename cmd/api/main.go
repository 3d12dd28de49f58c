package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ramservice/repair-quote-api/internal/catalog"
	"github.com/ramservice/repair-quote-api/internal/config"
	"github.com/ramservice/repair-quote-api/internal/database"
	"github.com/ramservice/repair-quote-api/internal/handlers"
	"github.com/ramservice/repair-quote-api/internal/intake"
	"github.com/ramservice/repair-quote-api/internal/routes"
	"github.com/ramservice/repair-quote-api/internal/store"
)

func main() {
	// 1. --- Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	if cfg.AdminPassword == "" {
		logrus.Warn("ADMIN_PASSWORD not set: admin routes will reject every request")
	}

	// 2. --- Document store ---
	db, err := database.Connect(cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logrus.Fatalf("Failed to ensure indexes: %v", err)
	}
	cancel()

	// 3. --- Application wiring ---
	// The resolver and intake service see only interfaces; the Mongo store
	// satisfies both.
	mongoStore := store.NewMongo(db)
	resolver := catalog.NewResolver(mongoStore)

	app := &handlers.Handlers{
		Resolver: resolver,
		Intake:   intake.NewService(resolver, mongoStore),
		Admin:    mongoStore,
		Config:   cfg,
	}

	// 4. --- Router & server ---
	router := routes.SetupRouter(app)

	logrus.WithField("address", cfg.Address).Info("Starting repair-quote API server")
	if err := router.Run(cfg.Address); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
