package content

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/internal/ids"
)

// PostgresStore implements Store over PostgreSQL. The pool is owned by the
// caller.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("content: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

const projectCols = `id, title, description, technologies, image_url, project_url, github_url, featured, created_at`

func scanProject(row pgx.Rows) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Technologies,
		&p.ImageURL, &p.ProjectURL, &p.GithubURL, &p.Featured, &p.CreatedAt)
	return p, err
}

func (s *PostgresStore) queryProjects(ctx context.Context, q string, args ...any) ([]Project, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("content.projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("content.projects: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListProjects implements Store.
func (s *PostgresStore) ListProjects(ctx context.Context) ([]Project, error) {
	return s.queryProjects(ctx,
		`SELECT `+projectCols+` FROM projects ORDER BY created_at DESC`)
}

// FeaturedProjects implements Store.
func (s *PostgresStore) FeaturedProjects(ctx context.Context, limit int) ([]Project, error) {
	if limit <= 0 {
		limit = 3
	}
	return s.queryProjects(ctx,
		`SELECT `+projectCols+` FROM projects WHERE featured ORDER BY created_at DESC LIMIT $1`, limit)
}

const serviceCols = `id, title, description, icon, price_range, featured`

func (s *PostgresStore) queryServices(ctx context.Context, q string, args ...any) ([]Service, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("content.services: %w", err)
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var v Service
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.Icon, &v.PriceRange, &v.Featured); err != nil {
			return nil, fmt.Errorf("content.services: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListServices implements Store.
func (s *PostgresStore) ListServices(ctx context.Context) ([]Service, error) {
	return s.queryServices(ctx,
		`SELECT `+serviceCols+` FROM services ORDER BY title`)
}

// FeaturedServices implements Store.
func (s *PostgresStore) FeaturedServices(ctx context.Context) ([]Service, error) {
	return s.queryServices(ctx,
		`SELECT `+serviceCols+` FROM services WHERE featured ORDER BY title`)
}

// CreateMessage implements Store.
func (s *PostgresStore) CreateMessage(ctx context.Context, m Message) (Message, error) {
	now := time.Now().UTC()
	id, err := ids.NewULID(now)
	if err != nil {
		return Message{}, err
	}
	m.ID = id
	m.CreatedAt = now
	m.Read = false

	_, err = s.pool.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, company, budget, body, created_at, read)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false)`,
		m.ID, m.Name, m.Email, m.Phone, m.Company, m.Budget, m.Body, m.CreatedAt)
	if err != nil {
		return Message{}, fmt.Errorf("content.CreateMessage: %w", err)
	}
	return m, nil
}

// ListMessages implements Store.
func (s *PostgresStore) ListMessages(ctx context.Context) ([]Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, phone, company, budget, body, created_at, read
		   FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("content.ListMessages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Company,
			&m.Budget, &m.Body, &m.CreatedAt, &m.Read); err != nil {
			return nil, fmt.Errorf("content.ListMessages: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkMessageRead implements Store.
func (s *PostgresStore) MarkMessageRead(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contact_messages SET read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("content.MarkMessageRead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMessage implements Store.
func (s *PostgresStore) DeleteMessage(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("content.DeleteMessage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats implements Store.
func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.pool.QueryRow(ctx,
		`SELECT
		   (SELECT count(*) FROM projects),
		   (SELECT count(*) FROM services),
		   (SELECT count(*) FROM contact_messages WHERE NOT read)`,
	).Scan(&st.Projects, &st.Services, &st.UnreadMessages)
	if err != nil {
		return Stats{}, fmt.Errorf("content.Stats: %w", err)
	}
	return st, nil
}

// Seed implements Store. Runs inside one transaction so concurrent startups
// cannot double-insert the starter rows.
func (s *PostgresStore) Seed(ctx context.Context, now time.Time) error {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("content.Seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var nServices, nProjects int
	if err := tx.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM services), (SELECT count(*) FROM projects)`,
	).Scan(&nServices, &nProjects); err != nil {
		return fmt.Errorf("content.Seed: %w", err)
	}

	if nServices == 0 {
		for _, v := range seedServices() {
			id, err := ids.NewULID(now)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO services (id, title, description, icon, price_range, featured)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				id, v.Title, v.Description, v.Icon, v.PriceRange, v.Featured); err != nil {
				return fmt.Errorf("content.Seed: %w", err)
			}
		}
	}

	if nProjects == 0 {
		for _, p := range seedProjects() {
			id, err := ids.NewULID(now)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO projects (id, title, description, technologies, image_url, project_url, github_url, featured, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				id, p.Title, p.Description, p.Technologies, p.ImageURL,
				p.ProjectURL, p.GithubURL, p.Featured, now); err != nil {
				return fmt.Errorf("content.Seed: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}
