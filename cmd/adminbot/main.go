package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/gratefultolord/intake_bot/internal/adminbot"
	"github.com/gratefultolord/intake_bot/internal/config"
	"github.com/gratefultolord/intake_bot/internal/db"
	"github.com/gratefultolord/intake_bot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.RequireAdminBot()
	}
	if err == nil {
		err = cfg.RequireDB()
	}
	if err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Fatal().Err(err).Msg("Error loading config")
	}

	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	defer database.Close()

	botAPI, err := tgbotapi.NewBotAPI(cfg.AdminBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating Telegram bot")
	}

	userBotAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating intake Telegram bot")
	}

	adminBotService := adminbot.New(
		botAPI,
		userBotAPI,
		db.NewHandoffRepository(database.Conn),
		db.NewAdminRepository(database.Conn),
		log,
	)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		botAPI.StopReceivingUpdates()
	}()

	log.Info().Str("bot", botAPI.Self.UserName).Msg("Admin bot started")

	adminBotService.Start(ctx, updates)
}
