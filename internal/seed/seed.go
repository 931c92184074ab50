package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Title       string
	Price       string
	Description string
	Keywords    string
}

// Apply inserts demo data for manual testing: one school with an admin, a
// small catalog and a feed post. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	schoolID, err := ensureSchool(ctx, pool, "Demo High School", "Lagos")
	if err != nil {
		return fmt.Errorf("ensure school: %w", err)
	}

	superID, err := ensureUser(ctx, pool, "", "super@alumnimart.test", "superadmin1", "Platform Admin", "super_admin")
	if err != nil {
		return fmt.Errorf("ensure super admin: %w", err)
	}
	adminID, err := ensureUser(ctx, pool, schoolID, "admin@demo-high.test", "schooladmin1", "Demo Admin", "school_admin")
	if err != nil {
		return fmt.Errorf("ensure school admin: %w", err)
	}
	if _, err := ensureUser(ctx, pool, schoolID, "member@demo-high.test", "member-pass1", "Demo Member", "member"); err != nil {
		return fmt.Errorf("ensure member: %w", err)
	}

	categoryID, err := ensureCategory(ctx, pool, schoolID, "Apparel")
	if err != nil {
		return fmt.Errorf("ensure category: %w", err)
	}
	brandID, err := ensureBrand(ctx, pool, schoolID, categoryID, "Alumni Crest")
	if err != nil {
		return fmt.Errorf("ensure brand: %w", err)
	}

	products := []productSeed{
		{
			Title:       "Alumni Hoodie",
			Price:       "25.00",
			Description: "Fleece hoodie with the school crest",
			Keywords:    "hoodie,apparel,crest",
		},
		{
			Title:       "Class Ring",
			Price:       "55.00",
			Description: "Engraved graduation ring",
			Keywords:    "ring,graduation",
		},
	}
	for _, p := range products {
		if err := ensureProduct(ctx, pool, schoolID, categoryID, brandID, adminID, p); err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Title, err)
		}
	}

	if err := ensureFeedPost(ctx, pool, schoolID, superID, "event", "Homecoming 2026", "Annual reunion on the main field."); err != nil {
		return fmt.Errorf("ensure feed post: %w", err)
	}

	return nil
}

func ensureSchool(ctx context.Context, pool *pgxpool.Pool, name, location string) (string, error) {
	const q = `
INSERT INTO schools (name, location)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET location = EXCLUDED.location
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name, location).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, schoolID, email, password, name, role string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	const q = `
INSERT INTO users (school_id, email, password_hash, name, role)
VALUES (NULLIF($1, '')::uuid, $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, schoolID, email, string(hashed), name, role).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, schoolID, name string) (string, error) {
	const q = `
INSERT INTO categories (school_id, name)
VALUES ($1::uuid, $2)
ON CONFLICT (name, COALESCE(school_id, '00000000-0000-0000-0000-000000000000'::uuid))
DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, schoolID, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureBrand(ctx context.Context, pool *pgxpool.Pool, schoolID, categoryID, name string) (string, error) {
	const q = `
INSERT INTO brands (school_id, category_id, name)
VALUES ($1::uuid, $2::uuid, $3)
ON CONFLICT (name, COALESCE(school_id, '00000000-0000-0000-0000-000000000000'::uuid))
DO UPDATE SET category_id = EXCLUDED.category_id
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, schoolID, categoryID, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, schoolID, categoryID, brandID, createdBy string, p productSeed) error {
	const q = `
INSERT INTO products (school_id, category_id, brand_id, title, price, description, keywords, created_by)
SELECT $1::uuid, $2::uuid, $3::uuid, $4, $5::numeric, $6, $7, $8::uuid
WHERE NOT EXISTS (
    SELECT 1 FROM products WHERE school_id = $1::uuid AND title = $4
)
`
	_, err := pool.Exec(ctx, q, schoolID, categoryID, brandID, p.Title, p.Price, p.Description, p.Keywords, createdBy)
	return err
}

func ensureFeedPost(ctx context.Context, pool *pgxpool.Pool, schoolID, createdBy, kind, title, body string) error {
	const q = `
INSERT INTO feed_posts (school_id, kind, title, body, created_by)
SELECT $1::uuid, $2, $3, $4, $5::uuid
WHERE NOT EXISTS (
    SELECT 1 FROM feed_posts WHERE school_id = $1::uuid AND title = $3
)
`
	_, err := pool.Exec(ctx, q, schoolID, kind, title, body, createdBy)
	return err
}
