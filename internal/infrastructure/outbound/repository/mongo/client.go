package mongo

import (
	"context"
	"fmt"
	"log/slog"

	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewClient connects to the deployment behind cfg.URI and verifies it with a
// ping. The caller owns the returned client and must Disconnect it.
func NewClient(ctx context.Context, cfg config.Mongo, log ports.Logger) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		log.Error("Failed to create MongoDB client", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		log.Error("Failed to ping MongoDB", slog.String("error", err.Error()))
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("Successfully connected to MongoDB", slog.String("db", cfg.DbName))
	return client, nil
}
