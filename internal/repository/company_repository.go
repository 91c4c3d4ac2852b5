package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository interface {
	FindByID(ctx context.Context, companyID string) (job.Company, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) FindByID(ctx context.Context, companyID string) (job.Company, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id::text, metadata
		 FROM companies
		 WHERE id::text = $1`,
		companyID,
	)

	var c job.Company
	var raw []byte
	if err := row.Scan(&c.ID, &raw); err != nil {
		if database.IsNoRows(err) {
			return job.Company{}, ErrCompanyNotFound
		}
		return job.Company{}, err
	}

	md, err := decodeCompanyMetadata(raw)
	if err != nil {
		return job.Company{}, fmt.Errorf("company %s: %w", c.ID, err)
	}
	c.Metadata = md
	return c, nil
}

func decodeCompanyMetadata(raw []byte) (*job.CompanyMetadata, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var md job.CompanyMetadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &md, nil
}
