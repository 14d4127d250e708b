package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/site"
)

// JobRepository хранит историю сгенерированных портфолио.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS portfolio_jobs (
	id TEXT PRIMARY KEY,
	owner_id UUID,
	filename TEXT NOT NULL DEFAULT '',
	theme TEXT NOT NULL,
	primary_color TEXT NOT NULL,
	bio TEXT NOT NULL,
	skills TEXT[] NOT NULL DEFAULT '{}',
	page_count INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS portfolio_jobs_owner_idx ON portfolio_jobs (owner_id, created_at DESC);
`)
	return err
}

const jobColumns = `id, owner_id, filename, theme, primary_color, bio, skills, page_count, created_at`

func (r *JobRepository) Create(ctx context.Context, j site.Job) error {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO portfolio_jobs (`+jobColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, j.ID, nullableOwner(j.OwnerID), j.Filename, j.Theme, j.PrimaryColor, j.Bio, skills, j.PageCount, j.CreatedAt)
	return err
}

func (r *JobRepository) Get(ctx context.Context, id string) (site.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM portfolio_jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Job{}, site.ErrNotFound
		}
		return site.Job{}, err
	}
	return j, nil
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]site.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+` FROM portfolio_jobs
WHERE owner_id = $1
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]site.Job, 0, limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobRepository) DeleteForOwner(ctx context.Context, ownerID uuid.UUID, id string) (site.Job, error) {
	row := r.pool.QueryRow(ctx, `
DELETE FROM portfolio_jobs WHERE id = $1 AND owner_id = $2
RETURNING `+jobColumns, id, ownerID)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Job{}, site.ErrNotFound
		}
		return site.Job{}, err
	}
	return j, nil
}

func scanJob(row pgx.Row) (site.Job, error) {
	var (
		j     site.Job
		owner *uuid.UUID
	)
	if err := row.Scan(&j.ID, &owner, &j.Filename, &j.Theme, &j.PrimaryColor, &j.Bio, &j.Skills, &j.PageCount, &j.CreatedAt); err != nil {
		return site.Job{}, err
	}
	if owner != nil {
		j.OwnerID = *owner
	}
	j.CreatedAt = j.CreatedAt.UTC()
	return j, nil
}

// anonymous jobs are stored with a NULL owner
func nullableOwner(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
