package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/api"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/cloud"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/config"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/database"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/events"
	httpHandlers "github.com/ANIKETSHETTY47/energy-admin-console/internal/http"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/repository"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := api.New(config.BackendURL(), config.BackendTimeout())

	var views service.ViewStore
	if config.UseDatabase() {
		db, err := database.Connect(ctx, config.DatabaseDSN())
		if err != nil {
			log.Fatal().Err(err).Msg("db connect failed")
		}
		defer db.Close()
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("db migrate failed")
		}
		views = repository.New(db)
	}

	var snapshots service.SnapshotStore
	if config.UseCloudServices() {
		s3c, err := cloud.NewS3Client(ctx, config.AWSRegion(), config.S3Bucket())
		if err != nil {
			log.Fatal().Err(err).Msg("s3 client init failed")
		}
		snapshots = s3c
	}

	svcs := service.New(backend, views, snapshots)
	dash := service.NewDashboard(svcs.Alerts, config.AlertsRefreshEvery(), config.StatsRefreshEvery())
	go dash.Run(ctx)

	if config.UseMQTT() {
		unsubscribe, err := events.Subscribe(config.MQTTBroker(), config.MQTTEventsTopic(), dash)
		if err != nil {
			log.Error().Err(err).Msg("change events unavailable, relying on polling")
		} else {
			defer unsubscribe()
		}
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httpHandlers.Register(app, svcs, dash, backend)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Str("backend", config.BackendURL()).Msg("admin console listening")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server exit")
	}
}
