package school

import (
	"context"
	"errors"

	"alumnimart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, name, location string) (*domain.School, error) {
	const q = `
INSERT INTO schools (name, location)
VALUES ($1, NULLIF($2, ''))
RETURNING id::text, name, COALESCE(location, ''), created_at
`
	var s domain.School
	if err := r.pool.QueryRow(ctx, q, name, location).Scan(&s.ID, &s.Name, &s.Location, &s.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.School, error) {
	const q = `
SELECT id::text, name, COALESCE(location, ''), created_at
FROM schools
WHERE id = $1
`
	var s domain.School
	if err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.Name, &s.Location, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.School, error) {
	const q = `
SELECT id::text, name, COALESCE(location, ''), created_at
FROM schools
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.School
	for rows.Next() {
		var s domain.School
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
