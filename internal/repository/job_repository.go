package repository

import (
	"context"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobRepository interface {
	FindByID(ctx context.Context, jobID string) (job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// FindByID compares on the text form of the id so a malformed id is simply
// not found instead of a cast error.
func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID string) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id::text, COALESCE(title, ''), company_id::text, requirements
		 FROM jobs
		 WHERE id::text = $1`,
		jobID,
	)

	var j job.Job
	if err := row.Scan(&j.ID, &j.Title, &j.CompanyID, &j.Requirements); err != nil {
		if database.IsNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}
