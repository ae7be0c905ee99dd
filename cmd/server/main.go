package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	post_service "blog-post-service/internal/application/service/post"
	post_service_port "blog-post-service/internal/domain/ports/input/post"
	ports "blog-post-service/internal/domain/ports/output"
	post_repository "blog-post-service/internal/domain/ports/output/post"
	"blog-post-service/internal/infrastructure/config"
	delivery_grpc "blog-post-service/internal/infrastructure/inbound/grpc"
	delivery_http "blog-post-service/internal/infrastructure/inbound/http"
	metrics_server "blog-post-service/internal/infrastructure/inbound/metrics"
	"blog-post-service/internal/infrastructure/logger"
	redis_cache "blog-post-service/internal/infrastructure/outbound/cache/redis"
	prometheus_metrics "blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	mongo_client "blog-post-service/internal/infrastructure/outbound/repository/mongo"
	post_memory "blog-post-service/internal/infrastructure/outbound/repository/post/memory"
	post_mongo "blog-post-service/internal/infrastructure/outbound/repository/post/mongo"
	post_postgres "blog-post-service/internal/infrastructure/outbound/repository/post/postgres"
	"blog-post-service/internal/infrastructure/outbound/repository/postgres"
)

const healthProbeInterval = 15 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()
	ctx := context.Background()
	log := logger.New(cfg.Env)

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	postRepo, closeStore, err := openStore(ctx, cfg, log, metrics)
	if err != nil {
		log.Error("Failed to open store", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		return 1
	}
	defer closeStore()

	var postService post_service_port.Service = post_service.NewPostService(
		postRepo,
		post_service.NewValidator(),
		log,
		metrics,
	)

	if cfg.Redis.Enabled {
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port),
			slog.Int("db", cfg.Redis.DB))
		rdb, err := redis_cache.Connect(cfg.Redis, log)
		if err != nil {
			return 1
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()

		postCache := redis_cache.NewPostCache(redis_cache.NewClient(rdb, cfg.Redis.PostTTL, log), log)
		postService = post_service.NewPostServiceCacheDecorator(postService, postCache, log, metrics)
	}

	httpServer := delivery_http.NewServer(postService, delivery_http.Options{
		Address:        cfg.HTTPServer.Address,
		Port:           cfg.HTTPServer.Port,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		RequestTimeout: cfg.HTTPServer.RequestTimeout,
	}, log, metrics)
	grpcServer := delivery_grpc.NewServer(postRepo, cfg.GRPCServer.Address, cfg.GRPCServer.Port, log, metrics)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	probeCtx, stopProbe := context.WithCancel(ctx)
	defer stopProbe()
	go grpcServer.WatchStore(probeCtx, healthProbeInterval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	httpDone := make(chan struct{})
	grpcDone := make(chan struct{})
	metricsDone := make(chan struct{})

	go func() {
		defer close(httpDone)
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		defer close(grpcDone)
		if err := grpcServer.Run(); err != nil {
			log.Error("gRPC server error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		defer close(metricsDone)
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
	}()

	exitCode := 0
	reason, unexpected := waitForStop(quit, map[string]<-chan struct{}{
		"http":    httpDone,
		"grpc":    grpcDone,
		"metrics": metricsDone,
	})
	if unexpected {
		exitCode = 1
		log.Error("Server stopped unexpectedly", slog.String("server", reason))
	}
	log.Info("Shutting down servers...", slog.String("reason", reason))

	stopProbe()
	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := grpcServer.Shutdown(); err != nil {
		log.Error("gRPC server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-httpDone
	<-grpcDone
	<-metricsDone

	log.Info("Server exited")
	return exitCode
}

// waitForStop blocks until a signal arrives or one of the servers returns.
// It reports the signal or server name, and whether the stop was unexpected.
func waitForStop(quit <-chan os.Signal, servers map[string]<-chan struct{}) (string, bool) {
	stopped := make(chan string, len(servers))
	for name, done := range servers {
		name, done := name, done
		go func() {
			<-done
			stopped <- name
		}()
	}

	select {
	case sig := <-quit:
		return sig.String(), false
	case name := <-stopped:
		return name, true
	}
}

// openStore builds the post repository selected by storage.driver. The
// returned func releases the underlying connection.
func openStore(ctx context.Context, cfg *config.Config, log ports.Logger, metrics ports.MetricsProvider) (post_repository.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMongo:
		client, err := mongo_client.NewClient(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("Failed to disconnect from MongoDB", slog.String("error", err.Error()))
			}
		}
		repo := post_mongo.NewPostRepository(client.Database(cfg.Mongo.DbName), cfg.Mongo.Collection, log, metrics)
		return repo, closeFn, nil

	case config.StoragePostgres:
		dsn := cfg.Database.DSN()
		if err := postgres.MigrateUp(dsn, cfg.Database.MigrationsPath, log); err != nil {
			return nil, nil, err
		}

		poolConfig, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse postgres pool config: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create postgres pool: %w", err)
		}
		return post_postgres.NewPostRepository(pool, log, metrics), pool.Close, nil

	case config.StorageMemory:
		log.Warn("Using in-memory storage, posts are lost on restart")
		return post_memory.NewPostRepository(log), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
