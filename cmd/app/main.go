package main

import (
	"context"
	"embed"

	"rpsboard/internal/application"
	"rpsboard/internal/delivery/discord"
	"rpsboard/internal/delivery/telegram"
	"rpsboard/internal/repository"
	"rpsboard/pkg/config"
	"rpsboard/pkg/logger"
	"rpsboard/pkg/metrics"
	service "rpsboard/pkg/services"
	"rpsboard/pkg/sheets"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("Opening %s event store...", cfg.Repo.Driver)
	repos, err := repository.NewRepository(ctx, &cfg.Repo, migrationFS)
	if err != nil {
		log.Error("failed to init repository: %s", err.Error())
		return
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Warn("failed to close repository: %s", err.Error())
		}
	}()

	var sheetsClient sheets.Client
	if cfg.GoogleCredentialsFile != "" {
		client, err := sheets.NewGoogleSheetsClient(ctx, cfg.GoogleCredentialsFile)
		if err != nil {
			log.Error("failed to init google sheets: %s", err.Error())
			return
		}
		sheetsClient = client
	}

	promMetrics := metrics.NewManager()

	services := application.NewService(repos, sheetsClient, application.Options{
		OwnerEmail:      cfg.GoogleOwnerEmail,
		SpreadsheetID:   cfg.SpreadsheetID,
		RefreshInterval: cfg.RefreshInterval,
	}, promMetrics, log)

	manager := service.NewManager(log)

	if cfg.DiscordToken != "" {
		bot, err := discord.NewBot(&cfg, services, log)
		if err != nil {
			log.Error("failed to init discord bot: %s", err.Error())
			return
		}
		manager.AddService(bot)
	}

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramAdminIDs, cfg.Location(), services, log)
		if err != nil {
			log.Error("failed to init telegram bot: %s", err.Error())
			return
		}
		manager.AddService(bot)
	}

	// Added after the bots so it is stopped before them.
	manager.AddService(services.Refresher)

	if cfg.MetricsAddr != "" {
		manager.AddService(metrics.NewServer(cfg.MetricsAddr, promMetrics, log))
	}

	if err := manager.Run(ctx); err != nil {
		log.Error("service manager stopped: %s", err.Error())
		return
	}
	log.Info("Stopped")
}
