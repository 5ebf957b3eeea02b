package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/internal/ids"
)

// PostgresStore implements Store over PostgreSQL.
//
// The pgx pool is owned by the caller; this store must NOT close it.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("identity: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

// GetByUsername loads an admin row by normalized username.
func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (Admin, error) {
	const q = `SELECT id, username, salt, password_hash, created_at
	             FROM admin_users WHERE username = $1`

	var adm Admin
	err := s.pool.QueryRow(ctx, q, NormalizeUsername(username)).Scan(
		&adm.ID, &adm.Username, &adm.Salt, &adm.PasswordHash, &adm.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Admin{}, ErrNotFound
		}
		return Admin{}, fmt.Errorf("identity.GetByUsername: %w", err)
	}
	return adm, nil
}

// SetPassword generates a fresh salt, recomputes the digest, and replaces
// both columns in a single UPDATE so no reader can observe a half-rotated
// credential.
func (s *PostgresStore) SetPassword(ctx context.Context, username, plaintext string) error {
	salt, err := NewSalt()
	if err != nil {
		return err
	}
	digest := Digest(plaintext, salt)

	const q = `UPDATE admin_users SET salt = $1, password_hash = $2
	            WHERE username = $3`

	tag, err := s.pool.Exec(ctx, q, salt, digest, NormalizeUsername(username))
	if err != nil {
		return fmt.Errorf("identity.SetPassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureDefaultAdmin seeds the default admin when the table is empty.
// The INSERT is guarded by the count inside one transaction, so concurrent
// startups cannot seed twice.
func (s *PostgresStore) EnsureDefaultAdmin(ctx context.Context, now time.Time) error {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("identity.EnsureDefaultAdmin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var n int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM admin_users`).Scan(&n); err != nil {
		return fmt.Errorf("identity.EnsureDefaultAdmin: %w", err)
	}
	if n > 0 {
		return nil
	}

	salt, err := NewSalt()
	if err != nil {
		return err
	}
	id, err := ids.NewULID(now)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO admin_users (id, username, salt, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, DefaultUsername, salt, Digest(DefaultPassword, salt), now,
	)
	if err != nil {
		return fmt.Errorf("identity.EnsureDefaultAdmin: %w", err)
	}

	return tx.Commit(ctx)
}
