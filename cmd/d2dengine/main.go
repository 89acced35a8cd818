package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"d2dsearch/internal/api"
	"d2dsearch/internal/buildinfo"
	"d2dsearch/internal/cache"
	"d2dsearch/internal/config"
	"d2dsearch/internal/engine"
	"d2dsearch/internal/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	cfg, err := config.LoadService()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := cfg.NewLogger()
	logger.WithFields(buildinfo.Current().Fields()).Info("starting d2d engine")

	settings, err := config.LoadSettings(cfg.EngineSettings)
	if err != nil {
		logger.WithError(err).Fatal("failed to load engine settings")
	}

	store, err := loadStore(logger, settings)
	if err != nil {
		logger.WithError(err).Fatal("failed to import configuration")
	}

	var tours cache.TourCache = cache.NewMemory(cfg.TourCacheSize, cfg.TourCacheTTL)
	var ready api.Pinger
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.Dial(ctx, cfg.RedisURL, cfg.TourCacheTTL)
		cancel()
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to Redis")
		}
		tours, ready = rc, rc
		logger.Info("tour cache backed by Redis")
	}

	seed := settings.Seed
	if seed == 0 {
		seed = cfg.Seed
	}

	metrics.RegisterDefault()
	eng := engine.New(store, engine.Options{
		Log:   logger,
		Cache: tours,
		Seed:  seed,
		Kind:  settings.Kind(),
		TSP:   settings.TSP,
	})
	logger.WithField("engine", eng.String()).Info("configuration imported")

	srv := api.NewServer(eng, api.Options{
		Log:     logger,
		Limiter: rate.NewLimiter(rate.Limit(cfg.RateRPS), cfg.RateBurst),
		Workers: cfg.EvalWorkers,
		Ready:   ready,
	})

	addr := ":" + cfg.Port
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.WithField("address", addr).Info("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.WithField("signal", sig).Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown error")
	}
	logger.Info("server stopped")
}

// loadStore imports the parameter files and the problem once, before any
// request is served.
func loadStore(logger *logrus.Logger, settings *config.Settings) (*config.Store, error) {
	store := config.NewStore(logger)

	params, err := config.LoadParams(settings.Parameters)
	if err != nil {
		return nil, err
	}
	if err := params.Apply(store, settings.Kind(), settings.DroneConfig); err != nil {
		return nil, err
	}

	problem, err := config.LoadProblem(settings.Problem)
	if err != nil {
		return nil, err
	}
	if err := problem.Import(store); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"problem":     problem.Name,
		"customers":   problem.CustomersCount,
		"drones":      problem.DronesCount,
		"technicians": problem.TechniciansCount,
	}).Info("problem loaded")
	return store, nil
}
