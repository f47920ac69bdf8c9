package slot

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"metalmarket-storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Read(ctx context.Context, ownerID, name string) ([]byte, error) {
	const q = `
SELECT payload
FROM storage_slots
WHERE owner_id = $1 AND name = $2
`
	var payload []byte
	if err := r.pool.QueryRow(ctx, q, ownerID, name).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (r *postgresRepo) Write(ctx context.Context, ownerID, name string, payload []byte) error {
	const q = `
INSERT INTO storage_slots (owner_id, name, payload, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (owner_id, name) DO UPDATE
SET payload = EXCLUDED.payload,
    updated_at = now()
`
	_, err := r.pool.Exec(ctx, q, ownerID, name, payload)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, ownerID, name string) error {
	const q = `
DELETE FROM storage_slots
WHERE owner_id = $1 AND name = $2
`
	_, err := r.pool.Exec(ctx, q, ownerID, name)
	return err
}
