package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-offer-scraper/internal/offer"
)

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// Connection poolers (PgBouncer in transaction mode) do not support
	// prepared statements, so the statement cache must stay disabled.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// EnsureSchema creates the offers table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS job_offers (
			id BIGSERIAL PRIMARY KEY,
			status TEXT NOT NULL,
			initial_url TEXT NOT NULL,
			url TEXT NOT NULL,
			source TEXT,
			title TEXT,
			company TEXT,
			location TEXT,
			salary TEXT,
			experience_level TEXT,
			employment_type TEXT,
			work_mode TEXT,
			description TEXT,
			error_description TEXT,
			scraped_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveOffer inserts one scrape result, success or error shaped.
func (r *Repository) SaveOffer(ctx context.Context, o offer.JobOffer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO job_offers (
			status, initial_url, url, source, title, company,
			location, salary, experience_level, employment_type, work_mode,
			description, error_description, scraped_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		o.Status, o.InitialURL, o.URL, string(o.Source), o.Title, o.Company,
		o.Location, o.Salary, o.ExperienceLevel, o.EmploymentType, o.WorkMode,
		o.Description, o.ErrorDescription, o.ScrapedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}
	return nil
}
