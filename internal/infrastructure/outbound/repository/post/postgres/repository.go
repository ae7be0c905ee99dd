package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/outbound/repository/postgres/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postColumns = "id, title, content, author_first_name, author_last_name, created_at"

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics}
}

func (p *PostRepository) record(queryType string, start time.Time, success bool) {
	p.metrics.IncrementDatabaseQueries(queryType, success)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func translateError(err error) error {
	var connectErr *pgconn.ConnectError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return custom_errors.ErrPostNotFound
	case errors.As(err, &connectErr), pgconn.Timeout(err):
		return custom_errors.ErrStoreUnavailable
	default:
		return custom_errors.ErrDatabaseQuery
	}
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Author.FirstName,
		&post.Author.LastName,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	post.CreatedAt = post.CreatedAt.UTC()
	return &post, nil
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.String("title", post.Title))

	args := pgx.NamedArgs{
		"id":                uuid.NewString(),
		"title":             post.Title,
		"content":           post.Content,
		"author_first_name": post.Author.FirstName,
		"author_last_name":  post.Author.LastName,
		"created_at":        time.Now().UTC(),
	}

	query := `
		INSERT INTO posts (id, title, content, author_first_name, author_last_name, created_at)
		VALUES (@id, @title, @content, @author_first_name, @author_last_name, @created_at)
		RETURNING ` + postColumns

	createdPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.record("post_create", start, false)
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, translateError(err)
	}

	p.record("post_create", start, true)
	p.log.Debug("Successfully created post", slog.String("id", createdPost.ID))
	return createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by ID", slog.String("id", id))

	postID, err := uuid.Parse(id)
	if err != nil {
		p.log.Debug("Post id is not a UUID", slog.String("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id`
	post, err := scanPost(p.db.QueryRow(ctx, query, pgx.NamedArgs{"id": postID.String()}))
	if err != nil {
		p.record("post_get_by_id", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.String("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.String("id", id), slog.String("error", err.Error()))
		return nil, translateError(err)
	}

	p.record("post_get_by_id", start, true)
	return post, nil
}

func (p *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	start := time.Now()
	p.log.Debug("Listing posts")

	rows, err := p.db.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at ASC`)
	if err != nil {
		p.record("post_list", start, false)
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, translateError(err)
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			p.record("post_list", start, false)
			p.log.Error("Error scanning post during List", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		p.record("post_list", start, false)
		p.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, translateError(err)
	}

	p.record("post_list", start, true)
	p.log.Debug("Successfully listed posts", slog.Int("count", len(posts)))
	return posts, nil
}

func (p *PostRepository) Update(ctx context.Context, id string, update *model.UpdatePostDTO) (*model.Post, error) {
	start := time.Now()

	postID, err := uuid.Parse(id)
	if err != nil {
		return nil, custom_errors.ErrPostNotFound
	}

	setClauses := []string{}
	args := pgx.NamedArgs{"id": postID.String()}

	if update.Title != nil {
		setClauses = append(setClauses, "title = @title")
		args["title"] = *update.Title
	}
	if update.Content != nil {
		setClauses = append(setClauses, "content = @content")
		args["content"] = *update.Content
	}
	if update.Author != nil {
		if update.Author.FirstName != nil {
			setClauses = append(setClauses, "author_first_name = @author_first_name")
			args["author_first_name"] = *update.Author.FirstName
		}
		if update.Author.LastName != nil {
			setClauses = append(setClauses, "author_last_name = @author_last_name")
			args["author_last_name"] = *update.Author.LastName
		}
	}

	if len(setClauses) == 0 {
		p.log.Debug("No fields to update", slog.String("id", id))
		return p.GetByID(ctx, id)
	}

	p.log.Debug("Building update query", slog.String("id", id), slog.Int("set_clauses_count", len(setClauses)))
	query := "UPDATE posts SET " + strings.Join(setClauses, ", ") + " WHERE id = @id RETURNING " + postColumns

	updatedPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.record("post_update", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id during Update", slog.String("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post", slog.String("id", id), slog.String("error", err.Error()))
		return nil, translateError(err)
	}

	p.record("post_update", start, true)
	p.log.Debug("Successfully updated post", slog.String("id", id))
	return updatedPost, nil
}

func (p *PostRepository) Delete(ctx context.Context, id string) error {
	start := time.Now()
	p.log.Debug("Deleting post", slog.String("id", id))

	postID, err := uuid.Parse(id)
	if err != nil {
		return custom_errors.ErrPostNotFound
	}

	result, err := p.db.Exec(ctx, `DELETE FROM posts WHERE id = @id`, pgx.NamedArgs{"id": postID.String()})
	if err != nil {
		p.record("post_delete", start, false)
		p.log.Error("Error deleting post", slog.String("id", id), slog.String("error", err.Error()))
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		p.record("post_delete", start, false)
		p.log.Debug("Post not found during deletion", slog.String("id", id))
		return custom_errors.ErrPostNotFound
	}

	p.record("post_delete", start, true)
	p.log.Debug("Successfully deleted post", slog.String("id", id))
	return nil
}

func (p *PostRepository) Drop(ctx context.Context) error {
	start := time.Now()
	p.log.Warn("Truncating posts table")

	if _, err := p.db.Exec(ctx, `TRUNCATE TABLE posts`); err != nil {
		p.record("post_drop", start, false)
		p.log.Error("Error truncating posts table", slog.String("error", err.Error()))
		return translateError(err)
	}

	p.record("post_drop", start, true)
	return nil
}

func (p *PostRepository) Ping(ctx context.Context) error {
	pinger, ok := p.db.(*pgxpool.Pool)
	if !ok {
		return nil
	}
	if err := pinger.Ping(ctx); err != nil {
		p.log.Error("Postgres ping failed", slog.String("error", err.Error()))
		return custom_errors.ErrStoreUnavailable
	}
	return nil
}
