package identity

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/internal/ids"
)

// Integration tests are opt-in and require PORTFOLIO_TEST_DATABASE_URL.
// Each test runs in a throwaway schema so parallel runs cannot collide.

const adminSchemaDDL = `CREATE TABLE admin_users (
	id            text PRIMARY KEY,
	username      text NOT NULL UNIQUE,
	salt          bytea NOT NULL,
	password_hash bytea NOT NULL,
	created_at    timestamptz NOT NULL
)`

func mustOpenTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	raw := strings.TrimSpace(os.Getenv("PORTFOLIO_TEST_DATABASE_URL"))
	if raw == "" {
		t.Skip("integration test skipped: PORTFOLIO_TEST_DATABASE_URL is not set")
	}

	schema, err := ids.NewULID(time.Now().UTC())
	if err != nil {
		t.Fatalf("schema id: %v", err)
	}
	schema = "portfolio_it_" + strings.ToLower(schema)

	cfg, err := pgxpool.ParseConfig(raw)
	if err != nil {
		t.Fatalf("parse PORTFOLIO_TEST_DATABASE_URL: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}

	if _, err := pool.Exec(ctx, `CREATE SCHEMA `+schema); err != nil {
		pool.Close()
		t.Skipf("integration test skipped: Postgres unreachable: %v", err)
	}
	if _, err := pool.Exec(ctx, adminSchemaDDL); err != nil {
		pool.Close()
		t.Fatalf("create table: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = pool.Exec(ctx, `DROP SCHEMA IF EXISTS `+schema+` CASCADE`)
		pool.Close()
	})

	s, err := NewPostgresStore(pool)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestPostgresStore_EnsureDefaultAdmin_Idempotent(t *testing.T) {
	t.Parallel()

	s := mustOpenTestStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if err := s.EnsureDefaultAdmin(ctx, now); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := s.EnsureDefaultAdmin(ctx, now); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	adm, err := s.GetByUsername(ctx, DefaultUsername)
	if err != nil {
		t.Fatalf("get seeded admin: %v", err)
	}
	if !Match(DefaultPassword, adm.Salt, adm.PasswordHash) {
		t.Fatal("seeded admin does not verify with the default password")
	}
}

func TestPostgresStore_GetByUsername_Normalizes(t *testing.T) {
	t.Parallel()

	s := mustOpenTestStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.EnsureDefaultAdmin(ctx, time.Now().UTC()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	adm, err := s.GetByUsername(ctx, "  ADMIN  ")
	if err != nil {
		t.Fatalf("lookup with unnormalized username: %v", err)
	}
	if adm.Username != DefaultUsername {
		t.Fatalf("got username %q, want %q", adm.Username, DefaultUsername)
	}

	if _, err := s.GetByUsername(ctx, "nosuchuser"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown username: got %v, want ErrNotFound", err)
	}
}

func TestPostgresStore_SetPassword_RotatesSalt(t *testing.T) {
	t.Parallel()

	s := mustOpenTestStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := s.EnsureDefaultAdmin(ctx, time.Now().UTC()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	before, err := s.GetByUsername(ctx, DefaultUsername)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := s.SetPassword(ctx, DefaultUsername, "rotated-secret"); err != nil {
		t.Fatalf("set password: %v", err)
	}

	after, err := s.GetByUsername(ctx, DefaultUsername)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if bytes.Equal(before.Salt, after.Salt) {
		t.Fatal("salt was not rotated")
	}
	if !Match("rotated-secret", after.Salt, after.PasswordHash) {
		t.Fatal("new password does not verify")
	}
	if Match(DefaultPassword, after.Salt, after.PasswordHash) {
		t.Fatal("old password still verifies")
	}

	if err := s.SetPassword(ctx, "nosuchuser", "whatever-pw"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("set password for unknown admin: got %v, want ErrNotFound", err)
	}
}
