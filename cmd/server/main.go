package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"salonmate/internal/api"
	"salonmate/internal/app"
	"salonmate/internal/config"
	"salonmate/internal/ledger"
	"salonmate/internal/metrics"
	"salonmate/internal/notify"
	"salonmate/internal/session"
	"salonmate/internal/store"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("SALONMATE_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Auth.Password == "" {
		logger.Fatal().Msg("set auth.password in config")
	}

	db, err := store.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer db.Close()

	var rdb *redis.Client
	var sessions session.Store
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		sessions = session.NewRedisStore(rdb)
	} else {
		sessions = session.NewMemoryStore()
	}

	gate := session.NewGate(cfg.Auth.Password, sessions, &logger)
	loader := ledger.NewLoader(cfg.Ledger.Source, &logger)
	ctrl := app.New(db, loader, gate, cfg.TimeSlots(), &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ctrl.Refresh(ctx); err != nil {
		logger.Fatal().Err(err).Msg("initial data load failed")
	}
	go ctrl.StartClock(ctx)

	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8090
	}
	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, db, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	if cfg.Backup.Enabled {
		backup := store.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backup.Start(ctx)
	}

	if cfg.Notify.Enabled {
		notifier, err := notify.NewTelegramNotifier(cfg.Notify.BotToken, cfg.Notify.ChatID, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("create notifier error")
		}
		digestCfg := notify.DefaultDigestConfig()
		digestCfg.Timezone = cfg.Notify.Timezone
		digestCfg.DailyHour = cfg.Notify.DailyHour
		digestCfg.DailyMinute = cfg.Notify.DailyMinute
		digest, err := notify.NewDigestScheduler(digestCfg, ctrl, notifier, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("create digest scheduler error")
		}
		go digest.Start(ctx)
	}

	server := api.NewHTTPServer(cfg.Server.Port, ctrl, &logger)
	logger.Info().Msg("salonmate started")
	if err := server.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("API server error")
	}
}

func startHealthServer(ctx context.Context, port int, db *store.DB, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := db.Ping(ctxPing); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
