package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/gratefultolord/intake_bot/internal/adminbot"
	"github.com/gratefultolord/intake_bot/internal/bot"
	"github.com/gratefultolord/intake_bot/internal/config"
	"github.com/gratefultolord/intake_bot/internal/db"
	"github.com/gratefultolord/intake_bot/internal/dialog"
	"github.com/gratefultolord/intake_bot/internal/logger"
	"github.com/gratefultolord/intake_bot/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Fatal().Err(err).Msg("Error loading config")
	}

	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating telegram bot")
	}

	opts := []bot.Option{
		bot.WithLogger(log),
		bot.WithResetOnFarewell(cfg.ResetOnFarewell),
	}

	var states bot.Store

	switch cfg.StateBackend {
	case config.BackendMemory:
		log.Warn().Msg("using in-memory state store, conversations are lost on restart")
		states = store.NewMemory()

	case config.BackendRedis:
		client, err := store.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to redis")
		}
		defer client.Close()

		states = store.NewRedis(client, store.WithTTL(cfg.StateTTL), store.WithRedisLogger(log))
	}

	// hand-offs and the postgres backend both need the database
	if cfg.RequireDB() == nil {
		database, err := db.New(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to database")
		}
		defer database.Close()

		err = database.Migrate(ctx, "db_scripts/init.sql", "db_scripts/admin.sql")
		if err != nil {
			log.Fatal().Err(err).Msg("Error running migrations")
		}

		if states == nil {
			states = db.NewConversationRepository(database.Conn)
		}

		var notifier adminbot.Sender
		if cfg.AdminBotToken != "" {
			adminAPI, err := tgbotapi.NewBotAPI(cfg.AdminBotToken)
			if err != nil {
				log.Fatal().Err(err).Msg("Error creating admin telegram bot")
			}
			notifier = adminAPI
		}

		queue := adminbot.NewQueue(
			db.NewHandoffRepository(database.Conn),
			db.NewAdminRepository(database.Conn),
			notifier,
			log,
		)
		opts = append(opts, bot.WithHandoffs(queue))
	} else {
		log.Warn().Msg("database not configured, hand-off requests are not recorded")
	}

	if states == nil {
		log.Fatal().Err(cfg.RequireDB()).Msg("STATE_BACKEND=postgres needs the database")
	}

	machine := dialog.New(dialog.WithLocation(cfg.Location))
	botService := bot.New(botAPI, states, machine, opts...)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		botAPI.StopReceivingUpdates()
	}()

	log.Info().Str("bot", botAPI.Self.UserName).Str("state_backend", cfg.StateBackend).Msg("Bot started")

	botService.Start(ctx, updates)
}
