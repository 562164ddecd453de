package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	RedisAddress    string
	PaymentAPIBase  string
	PaymentAPIKey   string
	MailAPIBase     string
	MailAPIKey      string
	MailFrom        string
	ClientURL       string
	AuthSecret      string
	SweepInterval   time.Duration
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultRedisAddress    = "localhost:6379"
	defaultMailFrom        = "orders@mealdesk.app"
	defaultClientURL       = "http://localhost:3000"
	defaultAuthSecret      = "change-me-in-production"
	defaultSweepInterval   = 15 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		RedisAddress:    getString(lookup, "REDIS_ADDRESS", defaultRedisAddress),
		PaymentAPIBase:  getString(lookup, "PAYMENT_API_BASE", ""),
		PaymentAPIKey:   getString(lookup, "PAYMENT_API_KEY", ""),
		MailAPIBase:     getString(lookup, "MAIL_API_BASE", ""),
		MailAPIKey:      getString(lookup, "MAIL_API_KEY", ""),
		MailFrom:        getString(lookup, "MAIL_FROM", defaultMailFrom),
		ClientURL:       getString(lookup, "CLIENT_URL", defaultClientURL),
		AuthSecret:      getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		SweepInterval:   getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("mealdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for refund locks")
	fs.StringVar(&cfg.PaymentAPIBase, "payment-api", cfg.PaymentAPIBase, "Payment provider base URL")
	fs.StringVar(&cfg.PaymentAPIKey, "payment-key", cfg.PaymentAPIKey, "Payment provider API key")
	fs.StringVar(&cfg.MailAPIBase, "mail-api", cfg.MailAPIBase, "Mail provider base URL")
	fs.StringVar(&cfg.MailAPIKey, "mail-key", cfg.MailAPIKey, "Mail provider API key")
	fs.StringVar(&cfg.MailFrom, "mail-from", cfg.MailFrom, "Sender address for outbound email")
	fs.StringVar(&cfg.ClientURL, "client-url", cfg.ClientURL, "Frontend base URL for checkout redirects")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between background sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaymentAPIBase == "" {
		return nil, fmt.Errorf("payment provider base URL must be provided")
	}

	if cfg.MailAPIBase == "" {
		return nil, fmt.Errorf("mail provider base URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
