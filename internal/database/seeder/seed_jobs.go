package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

// DemoJobsSeeder inserts one company owned by DemoEmployerID and one posting
// asking for SEO and content writing.
type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureSeedSchema(ctx, db, "companies", "jobs"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(
		ctx,
		`INSERT INTO companies (id, name, metadata)
		 VALUES ($1, $2, jsonb_build_object('user_id', $3::text))
		 ON CONFLICT (id) DO NOTHING`,
		DemoCompanyID, "Demo Marketing Co.", DemoEmployerID,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO jobs (id, company_id, title, requirements)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		DemoJobID, DemoCompanyID, "Chuyên viên SEO", "Cần biết SEO và Content Writing",
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
