package main

import (
	"context"

	"fablab/internal/reserves/events"
	"fablab/internal/reserves/handler"
	"fablab/internal/reserves/repository"
	"fablab/internal/reserves/service"
	"fablab/internal/reserves/validator"
	"fablab/pkg/app"
	"fablab/pkg/config"
	kafka_config "fablab/pkg/kafka/config"
)

const ServiceName = "reserves"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Reserves service", "fablab", cfg.FabLabName)
	cfg.SetMongo()

	bootstrapIndexes(cfg)

	serverApp := app.NewApplication(cfg)
	reservationService := initServices(cfg, serverApp)
	serverApp.SetApp(handler.NewReservationHandler(reservationService, cfg))
	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application) service.ReservationService {
	reservationValidator := validator.NewReservationValidator(cfg.Log)
	reservationRepo := repository.NewMongoReservationRepository(cfg)
	lockRepo := repository.NewReservationLockRepository(cfg)

	reservationService := service.NewReservationService(
		reservationRepo,
		lockRepo,
		reservationValidator,
		initPublisher(cfg, serverApp),
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService
}

// initPublisher wires the Kafka event publisher when brokers are configured.
// Without brokers the service runs with events disabled.
func initPublisher(cfg *config.Config, serverApp *app.Application) service.EventPublisher {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	if kafkaCfg == nil {
		cfg.Log.Info("Kafka brokers not configured, event publishing disabled")
		return nil
	}

	publisher, err := events.NewPublisher(kafkaCfg, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}
	serverApp.RegisterCloser(publisher)
	return publisher
}

func bootstrapIndexes(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	if err := repository.EnsureIndexes(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to create reservation indexes", "error", err)
	}
	if err := repository.EnsureLockIndexes(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to create reservation lock indexes", "error", err)
	}

	cfg.Log.Info("Mongo indexes ensured",
		"collections", []string{"reserves", "reserve_locks"},
	)
}
