package post_repository_postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	"blog-post-service/internal/infrastructure/logger"
	prometheus_metrics "blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	post_repository_postgres "blog-post-service/internal/infrastructure/outbound/repository/post/postgres"
	"blog-post-service/internal/infrastructure/outbound/repository/postgres"
)

const migrationsPath = "../../../../../../migrations"

func setupPostgres(t *testing.T) *post_repository_postgres.PostRepository {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("Skipping test - TEST_POSTGRES_DSN not set")
	}

	log := logger.New("test")
	require.NoError(t, postgres.MigrateUp(dsn, migrationsPath, log))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)

	repo := post_repository_postgres.NewPostRepository(pool, log, prometheus_metrics.NewPrometheusMetricsProvider())
	t.Cleanup(func() {
		assert.NoError(t, repo.Drop(context.Background()))
		pool.Close()
	})
	return repo
}

func TestPostRepository_Lifecycle(t *testing.T) {
	repo := setupPostgres(t)
	ctx := context.Background()

	require.NoError(t, repo.Ping(ctx))

	created, err := repo.Create(ctx, &model.Post{
		Title:   "T",
		Content: "C",
		Author:  model.Author{FirstName: "A", LastName: "B"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Author, got.Author)

	title := "updated Data"
	updated, err := repo.Update(ctx, created.ID, &model.UpdatePostDTO{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "C", updated.Content)

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.Equal(t, custom_errors.ErrPostNotFound, err)
	assert.Equal(t, custom_errors.ErrPostNotFound, repo.Delete(ctx, created.ID))
}

func TestPostRepository_MalformedID(t *testing.T) {
	repo := setupPostgres(t)

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	assert.Equal(t, custom_errors.ErrPostNotFound, err)
}
