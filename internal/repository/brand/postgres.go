package brand

import (
	"context"
	"errors"
	"fmt"

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

func (r *postgresRepo) Create(ctx context.Context, b domain.Brand) (*domain.Brand, error) {
	const q = `
INSERT INTO brands (school_id, category_id, name)
VALUES ($1, $2, $3)
RETURNING id::text, created_at
`
	out := b
	if err := r.pool.QueryRow(ctx, q, b.SchoolID, b.CategoryID, b.Name).Scan(&out.ID, &out.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Rename(ctx context.Context, id, name string) (*domain.Brand, error) {
	const q = `
UPDATE brands
SET name = $1
WHERE id = $2
RETURNING id::text, school_id::text, category_id::text, name, created_at
`
	var b domain.Brand
	if err := r.pool.QueryRow(ctx, q, name, id).Scan(&b.ID, &b.SchoolID, &b.CategoryID, &b.Name, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	var dependents int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE brand_id = $1`, id).Scan(&dependents); err != nil {
		return err
	}
	if dependents > 0 {
		return fmt.Errorf("brand has %d dependent product(s): %w", dependents, domain.ErrConflict)
	}

	cmd, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	const q = `
SELECT id::text, school_id::text, category_id::text, name, created_at
FROM brands
WHERE id = $1
`
	var b domain.Brand
	if err := r.pool.QueryRow(ctx, q, id).Scan(&b.ID, &b.SchoolID, &b.CategoryID, &b.Name, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) ListForSchool(ctx context.Context, schoolID *string) ([]domain.Brand, error) {
	const q = `
SELECT id::text, school_id::text, category_id::text, name, created_at
FROM brands
WHERE school_id IS NULL OR school_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.SchoolID, &b.CategoryID, &b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
