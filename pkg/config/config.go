// Package config loads service configuration from the environment. A .env
// file in the working directory is honored when present. Required values are
// checked at startup so a misconfigured deployment fails fast instead of
// failing per request.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend selects which branch of the pipeline handles an accepted order.
type Backend string

const (
	// BackendEmail renders a PDF receipt and mails it.
	BackendEmail Backend = "email"
	// BackendSquare creates an invoice with the payments provider.
	BackendSquare Backend = "square"
)

// Flow selects the Square call sequence.
type Flow string

const (
	// FlowCustomer creates a customer, then an invoice with inline line items.
	FlowCustomer Flow = "customer"
	// FlowOrder creates an order from the cart, then an invoice referencing it.
	FlowOrder Flow = "order"
)

// Square holds the payments-provider settings.
type Square struct {
	AccessToken string
	LocationID  string
	Environment string
	Flow        Flow
}

// SMTP holds the outbound mail settings.
type SMTP struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Operators []string
}

// Config is the full service configuration.
type Config struct {
	Port        string
	Backend     Backend
	CompanyName string
	OrderPrefix string
	StaticDir   string
	LogoPath    string
	RedisAddr   string
	OtelHost    string
	Square      Square
	SMTP        SMTP
}

// Load reads configuration and validates the values the selected backend
// needs. Missing required values produce a single descriptive error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        envDefault("PORT", "5000"),
		Backend:     Backend(envDefault("ORDER_BACKEND", string(BackendEmail))),
		CompanyName: envDefault("COMPANY_NAME", "House of India PA"),
		OrderPrefix: envDefault("ORDER_PREFIX", "HOI"),
		StaticDir:   envDefault("STATIC_DIR", "public"),
		LogoPath:    os.Getenv("LOGO_PATH"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		OtelHost:    os.Getenv("OTEL_HOST"),
		Square: Square{
			AccessToken: os.Getenv("SQUARE_ACCESS_TOKEN"),
			LocationID:  os.Getenv("SQUARE_LOCATION_ID"),
			Environment: envDefault("SQUARE_ENVIRONMENT", "sandbox"),
			Flow:        Flow(envDefault("SQUARE_FLOW", string(FlowCustomer))),
		},
		SMTP: SMTP{
			Host:      envDefault("SMTP_HOST", "smtp.office365.com"),
			Username:  os.Getenv("SMTP_USERNAME"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			Operators: splitList(envDefault("OPERATOR_EMAILS", "houseofindiapa@gmail.com,info@hoipa.com")),
		},
	}

	port, err := strconv.Atoi(envDefault("SMTP_PORT", "587"))
	if err != nil {
		return Config{}, fmt.Errorf("SMTP_PORT: %w", err)
	}
	cfg.SMTP.Port = port

	switch cfg.Backend {
	case BackendEmail:
		if cfg.SMTP.Username == "" {
			return Config{}, fmt.Errorf("SMTP_USERNAME is required for the email backend")
		}
		if cfg.SMTP.Password == "" {
			return Config{}, fmt.Errorf("SMTP_PASSWORD is required for the email backend")
		}
	case BackendSquare:
		if cfg.Square.AccessToken == "" {
			return Config{}, fmt.Errorf("SQUARE_ACCESS_TOKEN is required for the square backend")
		}
		if cfg.Square.LocationID == "" {
			return Config{}, fmt.Errorf("SQUARE_LOCATION_ID is required for the square backend")
		}
		if f := cfg.Square.Flow; f != FlowCustomer && f != FlowOrder {
			return Config{}, fmt.Errorf("SQUARE_FLOW must be %q or %q, got %q", FlowCustomer, FlowOrder, f)
		}
		if e := cfg.Square.Environment; e != "sandbox" && e != "production" {
			return Config{}, fmt.Errorf("SQUARE_ENVIRONMENT must be sandbox or production, got %q", e)
		}
	default:
		return Config{}, fmt.Errorf("ORDER_BACKEND must be %q or %q, got %q", BackendEmail, BackendSquare, cfg.Backend)
	}

	return cfg, nil
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
