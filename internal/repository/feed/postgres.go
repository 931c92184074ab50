package feed

import (
	"context"
	"errors"

	"alumnimart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, p domain.FeedPost) (*domain.FeedPost, error) {
	const q = `
INSERT INTO feed_posts (school_id, kind, title, body, starts_at, created_by)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
RETURNING id::text, created_at
`
	out := p
	if err := r.pool.QueryRow(ctx, q, p.SchoolID, p.Kind, p.Title, p.Body, p.StartsAt, p.CreatedBy).
		Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListBySchool(ctx context.Context, schoolID, kind string) ([]domain.FeedPost, error) {
	const q = `
SELECT id::text, school_id::text, kind, title, COALESCE(body, ''), starts_at, created_by::text, created_at
FROM feed_posts
WHERE school_id = $1 AND ($2 = '' OR kind = $2)
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, schoolID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FeedPost
	for rows.Next() {
		var p domain.FeedPost
		if err := rows.Scan(&p.ID, &p.SchoolID, &p.Kind, &p.Title, &p.Body, &p.StartsAt, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.FeedPost, error) {
	const q = `
SELECT id::text, school_id::text, kind, title, COALESCE(body, ''), starts_at, created_by::text, created_at
FROM feed_posts
WHERE id = $1
`
	var p domain.FeedPost
	if err := r.pool.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.SchoolID, &p.Kind, &p.Title, &p.Body, &p.StartsAt, &p.CreatedBy, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM feed_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
