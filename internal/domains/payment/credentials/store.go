package credentials

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// =====================================================
// POSTGRES-BACKED STORE
// =====================================================

// Store resolves credentials from the payment_credentials table. Values are
// stored sealed (see Cipher) and decrypted on resolve, so a database dump
// alone never exposes merchant secrets.
//
// Schema:
//
//	CREATE TABLE payment_credentials (
//	    provider_type TEXT NOT NULL,
//	    provider_name TEXT NOT NULL,
//	    environment   TEXT NOT NULL,
//	    field         TEXT NOT NULL,
//	    value_sealed  TEXT NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (provider_type, provider_name, environment, field)
//	);
type Store struct {
	pool   *pgxpool.Pool
	cipher *Cipher
}

func NewStore(pool *pgxpool.Pool, cipher *Cipher) *Store {
	return &Store{pool: pool, cipher: cipher}
}

func (s *Store) Resolve(ctx context.Context, providerType, name, environment string) (map[string]string, error) {
	const query = `
		SELECT field, value_sealed
		FROM payment_credentials
		WHERE provider_type = $1 AND provider_name = $2 AND environment = $3`

	rows, err := s.pool.Query(ctx, query, providerType, name, environment)
	if err != nil {
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var field, sealed string
		if err := rows.Scan(&field, &sealed); err != nil {
			return nil, fmt.Errorf("failed to scan credential row: %w", err)
		}

		plain, err := s.cipher.Open(sealed)
		if err != nil {
			return nil, fmt.Errorf("failed to unseal %s/%s field %s: %w", providerType, environment, field, err)
		}
		values[field] = plain
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrNotFound, providerType, name, environment)
	}

	return values, nil
}

// Put seals and upserts one credential field.
func (s *Store) Put(ctx context.Context, providerType, name, environment, field, value string) error {
	sealed, err := s.cipher.Seal(value)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO payment_credentials (provider_type, provider_name, environment, field, value_sealed, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (provider_type, provider_name, environment, field)
		DO UPDATE SET value_sealed = EXCLUDED.value_sealed, updated_at = now()`

	if _, err := s.pool.Exec(ctx, query, providerType, name, environment, field, sealed); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}
