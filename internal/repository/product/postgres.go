package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"alumnimart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, school_id::text, category_id::text, brand_id::text, title, price, COALESCE(description, ''), COALESCE(keywords, ''), COALESCE(image_url, ''), created_by::text, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (school_id, category_id, brand_id, title, price, description, keywords, image_url, created_by)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
RETURNING id::text, created_at, updated_at
`
	out := p
	err := r.pool.QueryRow(ctx, q, p.SchoolID, p.CategoryID, p.BrandID, p.Title, p.Price, p.Description, p.Keywords, p.ImageURL, p.CreatedBy).
		Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		r.logger.Printf("product repo: create title=%q error=%v", p.Title, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	q := fmt.Sprintf(`
UPDATE products
SET title = $1, price = $2, description = NULLIF($3, ''), keywords = NULLIF($4, ''), image_url = NULLIF($5, ''), updated_at = now()
WHERE id = $6
RETURNING %s
`, productColumns)
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, in.Title, in.Price, in.Description, in.Keywords, in.ImageURL, id).
		Scan(&p.ID, &p.SchoolID, &p.CategoryID, &p.BrandID, &p.Title, &p.Price, &p.Description, &p.Keywords, &p.ImageURL, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.SchoolID, &p.CategoryID, &p.BrandID, &p.Title, &p.Price, &p.Description, &p.Keywords, &p.ImageURL, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Product, error) {
	q := fmt.Sprintf(`
SELECT %s
FROM products
WHERE (school_id IS NULL OR $1::uuid IS NULL OR school_id = $1)
  AND ($2 = '' OR category_id = $2::uuid)
  AND ($3 = '' OR brand_id = $3::uuid)
ORDER BY created_at DESC
`, productColumns)
	rows, err := r.pool.Query(ctx, q, f.SchoolID, f.CategoryID, f.BrandID)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.SchoolID, &p.CategoryID, &p.BrandID, &p.Title, &p.Price, &p.Description, &p.Keywords, &p.ImageURL, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}
