package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcels/internal/adapters"
	"parcels/internal/adapters/cache"
	"parcels/internal/adapters/httpclient"
	"parcels/internal/adapters/postgres"
	"parcels/internal/api"
	"parcels/internal/config"
	"parcels/internal/jobs"
	"parcels/internal/parcel"
	parcelhandler "parcels/internal/parcel/handler"
	"parcels/internal/platform/db"
	httpserver "parcels/internal/platform/http"
	"parcels/internal/platform/redis"
	"parcels/internal/rate"
	ratehandler "parcels/internal/rate/handler"
	"parcels/internal/session"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts the job workers, the rate scheduler and the HTTP server
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	setupLogger(appCfg.Logging)
	logrus.WithFields(logrus.Fields{"app": appCfg.App.Name, "env": appCfg.App.Env}).
		Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, redis ping)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer, appCfg.App.Name)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if appCfg.DbServer.MigrateOnStart {
		if err = db.Migrate(startupCtx, pool); err != nil {
			logrus.WithError(err).Error("Failed to apply migrations")
			return err
		}
		logrus.Info("✅ Migrations applied")
	}

	// Rate cache
	rateCache, closeCache, err := newRateCache(startupCtx, appCfg)
	if err != nil {
		logrus.WithError(err).Error("Failed to create rate cache")
		return err
	}
	defer closeCache()
	logrus.Infof("✅ Rate cache ready (%s)", appCfg.Cache.Driver)

	// External clients
	baseHTTPClient := &http.Client{Timeout: appCfg.RateAPI.Timeout()}
	rateClient := httpclient.NewUSDRateClient(baseHTTPClient, appCfg.RateAPI.URL)

	// Repositories
	parcelRepo := postgres.NewParcelRepository(pool, appCfg.DbServer.LockTimeout())
	referenceRepo := postgres.NewReferenceRepository(pool)

	// Services
	fetcher := rate.NewFetcher(rateClient, rateCache, appCfg.RateAPI.Timeout())
	registrar := parcel.NewRegistrar(parcelRepo, rateCache, fetcher)
	parcelService := parcel.NewService(parcelRepo, referenceRepo)

	// Job queue, durable in Postgres
	sqlDB := stdlib.OpenDBFromPool(pool)
	publisher, subscriber, err := jobs.NewSQLTransport(sqlDB, jobs.SQLTransportConfig{
		ConsumerGroup: appCfg.App.Name + "-workers",
		PollInterval:  appCfg.Jobs.PollInterval(),
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to create job transport")
		_ = sqlDB.Close()
		return err
	}
	queue := jobs.NewQueue(jobsConfig(appCfg.Jobs), publisher, subscriber, jobs.NewMetrics(prometheus.DefaultRegisterer))
	queue.Register(jobs.TypeRegisterParcel, parcel.RegisterJobHandler(registrar))
	queue.Register(jobs.TypeRefreshRate, rate.RefreshJobHandler(fetcher))

	queueDone := make(chan struct{})
	go func() {
		defer close(queueDone)
		if runErr := queue.Run(ctx); runErr != nil {
			logrus.WithError(runErr).Error("Job workers failed")
			stop()
		}
	}()
	// Workers must finish in-flight jobs before the DB pool closes
	defer func() {
		stop()
		<-queueDone
		if closeErr := queue.Close(); closeErr != nil {
			logrus.WithError(closeErr).Warn("Job transport close failed")
		}
		_ = sqlDB.Close()
	}()

	if appCfg.RateRefresh.Enabled {
		scheduler := rate.NewScheduler(queue, time.Duration(appCfg.RateRefresh.IntervalSeconds)*time.Second)
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	sessions := session.NewManager(appCfg.Session)
	router := api.NewRouter(
		parcelhandler.NewParcelHandler(parcelService, queue),
		ratehandler.NewRateHandler(queue, rateCache),
		api.Options{
			Session:                   sessions.Middleware,
			RegistrationRatePerMinute: appCfg.HTTPServer.RegistrationRatePerMinute,
		},
	)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop workers and scheduler
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func setupLogger(cfg config.Logging) {
	logrus.SetOutput(os.Stdout)
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if parsedLvl, parseErr := logrus.ParseLevel(cfg.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
}

// newRateCache builds the configured cache backend and returns a func releasing its resources.
func newRateCache(ctx context.Context, cfg *config.AppConfig) (adapters.RateCache, func(), error) {
	switch cfg.Cache.Driver {
	case "memory":
		c, err := cache.NewMemoryRateCache()
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	case "redis":
		client, err := redis.CreateClientAndPing(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return cache.NewRedisRateCache(client), func() {
			if closeErr := client.Close(); closeErr != nil {
				logrus.WithError(closeErr).Warn("Redis client close failed")
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

func jobsConfig(cfg config.Jobs) jobs.Config {
	return jobs.Config{
		Workers:     cfg.Workers,
		MaxAttempts: cfg.MaxAttempts,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		Backoff: jobs.BackoffConfig{
			InitialInterval:     time.Duration(cfg.InitialIntervalMs) * time.Millisecond,
			MaxInterval:         time.Duration(cfg.MaxIntervalSeconds) * time.Second,
			Multiplier:          cfg.Multiplier,
			RandomizationFactor: cfg.RandomizationFactor,
		},
	}
}
