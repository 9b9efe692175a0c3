package main

import (
	"context"
	"log"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"orderdesk/pkg/config"
	"orderdesk/pkg/invoice/square"
	"orderdesk/pkg/logger"
	"orderdesk/pkg/mailer"
	"orderdesk/pkg/otel"
	"orderdesk/pkg/receipt"
	"orderdesk/pkg/sequence/random"
	redisseq "orderdesk/pkg/sequence/redis"
)

// @title OrderDesk API
// @version 1.0
// @description Order intake for the storefront: accepts cart submissions and
// @description creates a Square invoice or emails a PDF receipt.
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatalf("orderdesk: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lg, err := logger.New("orderdesk", otel.GetTraceID)
	if err != nil {
		return err
	}
	defer lg.Sync()

	tp, shutdown, err := otel.InitTracing(lg, otel.Config{
		ServiceName: "orderdesk",
		Host:        cfg.OtelHost,
		Probability: 1.0,
	})
	if err != nil {
		return err
	}
	defer shutdown(context.Background())
	tracer := tp.Tracer("orderdesk")

	a := &app{
		log:     lg,
		backend: cfg.Backend,
		numbers: random.New(cfg.OrderPrefix),
		now:     time.Now,
	}
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		a.numbers = redisseq.New(client, cfg.OrderPrefix)
	}

	switch cfg.Backend {
	case config.BackendSquare:
		a.gateway = square.New(square.Config{
			AccessToken: cfg.Square.AccessToken,
			LocationID:  cfg.Square.LocationID,
			Environment: cfg.Square.Environment,
			Flow:        square.Flow(cfg.Square.Flow),
		})
	case config.BackendEmail:
		a.renderer = receipt.NewRenderer("", cfg.CompanyName, cfg.LogoPath)
		m, err := mailer.New(mailer.Config{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Username:  cfg.SMTP.Username,
			Password:  cfg.SMTP.Password,
			Operators: cfg.SMTP.Operators,
			Company:   cfg.CompanyName,
		})
		if err != nil {
			return err
		}
		a.notifier = m
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      a.routes(cfg.StaticDir, tracer),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	lg.Info(context.Background(), "listening", "addr", addr, "backend", string(cfg.Backend))
	return srv.ListenAndServe()
}
