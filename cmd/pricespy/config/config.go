package config

import "time"

// Config holds application configuration.
type Config struct {
	DatabaseURL      string        `env:"DATABASE_URL"`
	HTTPAddr         string        `env:"HTTP_ADDR" envDefault:":8000"`
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT" envDefault:"15s"`
	AlertCooldown    time.Duration `env:"ALERT_COOLDOWN" envDefault:"24h"`
	ScrapeInterval   time.Duration `env:"SCRAPE_INTERVAL" envDefault:"6h"`
	MaxSearchResults int           `env:"MAX_SEARCH_RESULTS" envDefault:"10"`
	ParallelChecks   int           `env:"PARALLEL_CHECKS" envDefault:"4"`

	SerpAPI  SerpAPI
	Resend   Resend
	Telegram Telegram
	RabbitMQ RabbitMQ
}

// SerpAPI holds Google Shopping search configuration.
type SerpAPI struct {
	Key string `env:"SERPAPI_KEY"`
}

// Resend holds email delivery configuration.
type Resend struct {
	Key       string `env:"RESEND_API_KEY"`
	FromEmail string `env:"FROM_EMAIL" envDefault:"onboarding@resend.dev"`
}

// Telegram holds Telegram delivery configuration.
type Telegram struct {
	BotToken string `env:"TELEGRAM_BOT_TOKEN"`
	ChatID   int64  `env:"TELEGRAM_CHAT_ID"`
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL      string `env:"RABBITMQ_URL"`
	Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"pricespy-ex"`
	Queue    string `env:"RABBITMQ_QUEUE" envDefault:"pricespy.commands"`
}
