package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/accadaniel/PriceSpy/cmd/pricespy/config"
	"github.com/accadaniel/PriceSpy/internal/api"
	"github.com/accadaniel/PriceSpy/internal/fetcher"
	"github.com/accadaniel/PriceSpy/internal/handler"
	"github.com/accadaniel/PriceSpy/internal/monitor"
	"github.com/accadaniel/PriceSpy/internal/notifier"
	"github.com/accadaniel/PriceSpy/internal/platform/rabbitmq"
	"github.com/accadaniel/PriceSpy/internal/platform/storage"
	"github.com/accadaniel/PriceSpy/internal/scheduler"
	"github.com/accadaniel/PriceSpy/internal/searchfeed"
	"github.com/caarlos0/env/v6"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	// UserAgent is user agent header value used when fetching product pages.
	UserAgent = "pricespy/0.0.1"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// local development convenience, a missing .env file is fine
	_ = godotenv.Load()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}

	store := storage.NewPostgres(pgDB)
	if err := store.Init(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't initialize database")
	}

	searcher := searchfeed.NewClient(&http.Client{Timeout: cfg.FetchTimeout}, cfg.SerpAPI.Key)

	mon := monitor.NewMonitor(
		searcher,
		store,
		newNotifier(cfg, &logger),
		monitor.WithCooldown(cfg.AlertCooldown),
		monitor.WithMaxResults(cfg.MaxSearchResults),
		monitor.WithParallelLimit(cfg.ParallelChecks),
	)

	// optional RabbitMQ command transport
	var amqpConnection *amqp.Connection
	var conn *rabbitmq.RabbitMQ
	if cfg.RabbitMQ.URL != "" {
		amqpConnection, err = amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't open RabbitMQ connection")
		}

		conn, err = rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't open RabbitMQ connection")
		}

		if err := conn.DeclareQueue(cfg.RabbitMQ.Queue, cfg.RabbitMQ.Queue); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't declare command queue")
		}

		han := handler.NewHandler(conn, mon, &logger)
		if err := han.Start(ctx, cfg.RabbitMQ.Queue); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't start consuming")
		}
	}

	sched := scheduler.New(mon, cfg.ScrapeInterval, &logger)
	if err := sched.Start(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start scheduler")
	}

	srv := api.NewServer(
		store,
		mon,
		fetcher.NewFetcher(&http.Client{Timeout: cfg.FetchTimeout}, UserAgent),
		&logger,
	)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Msg("HTTP server failed")
			cancel()
		}
	}()

	logger.Info().
		Str("addr", cfg.HTTPAddr).
		Msg("price monitor up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().
			Err(err).
			Msg("can't shut down HTTP server")
	}

	// wait for consumer to finish
	if conn != nil {
		<-conn.Done()
	}

	// close connections
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := pgDB.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close Postgres connection")
		}
	}()

	if amqpConnection != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := amqpConnection.Close(); err != nil {
				logger.Error().
					Err(err).
					Msg("can't close RabbitMQ connection")
			}
		}()
	}

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}

// newNotifier picks the delivery channel from configuration, preferring
// email over Telegram.
func newNotifier(cfg config.Config, logger *zerolog.Logger) notifier.Notifier {
	if cfg.Resend.Key != "" {
		return notifier.NewResendNotifier(http.DefaultClient, cfg.Resend.Key, cfg.Resend.FromEmail)
	}

	if cfg.Telegram.BotToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't connect Telegram bot")
		}
		return notifier.NewTelegramNotifier(bot, cfg.Telegram.ChatID)
	}

	logger.Fatal().Msg("no notifier configured, set RESEND_API_KEY or TELEGRAM_BOT_TOKEN")
	return nil
}
