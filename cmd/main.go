package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/menu"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/metrics"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/page"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/sequence"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Error("db migrate", "error", err)
			os.Exit(1)
		}
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("db connect", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// --- AMQP (optional) ---
	var publisher cart.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("rabbitmq connect", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			logger.Error("rabbitmq channel", "error", err)
			os.Exit(1)
		}
		pub, err := events.NewPublisher(ch, sequence.NewRepository(pool), cfg.EventProducer, logger)
		if err != nil {
			logger.Error("events publisher", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		publisher = pub
	} else {
		logger.Info("RABBITMQ_URL not set, cart events disabled")
	}

	// Fail fast on a bad cart URL before serving traffic.
	clients.NewClient("cart-service", cfg.CartURL, http.DefaultClient)

	m := metrics.New()
	store := page.NewStore(page.Options{
		Menu: menu.NewPostgresRepository(pool),
		NewCart: func() page.CartBackend {
			return clients.NewCartClient(clients.NewClient("cart-service", cfg.CartURL, clients.NewSessionHTTPClient(cfg.UpstreamTimeout)))
		},
		Publisher:         publisher,
		Recorder:          m,
		Logger:            logger,
		TTL:               cfg.SessionTTL,
		OnSessionsChanged: m.SetSessions,
	})
	go store.RunSweeper(ctx, sweepInterval(cfg.SessionTTL))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(httpapi.NewHandler(store, logger), m.Handler(), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "cart_url", cfg.CartURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func sweepInterval(ttl time.Duration) time.Duration {
	if d := ttl / 4; d > time.Minute {
		return d
	}
	return time.Minute
}
