package repository

import (
	"context"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	FindByID(ctx context.Context, applicationID string) (job.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, applicationID string) (job.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id::text, job_id::text, COALESCE(status, ''), COALESCE(email, '')
		 FROM job_applications
		 WHERE id::text = $1`,
		applicationID,
	)

	var a job.Application
	if err := row.Scan(&a.ID, &a.JobID, &a.Status, &a.Email); err != nil {
		if database.IsNoRows(err) {
			return job.Application{}, ErrApplicationNotFound
		}
		return job.Application{}, err
	}
	return a, nil
}
