package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

type CandidateSkillsSeeder struct{}

func (CandidateSkillsSeeder) Name() string { return "candidate_skills" }

func (CandidateSkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureSeedSchema(ctx, db, "skills"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		UserID string
		Name   string
	}{
		{UserID: DemoCandidate1, Name: "SEO"},
		{UserID: DemoCandidate1, Name: "Google Analytics"},
		{UserID: DemoCandidate2, Name: "Java"},
		{UserID: DemoCandidate2, Name: "Spring Boot"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, user_id, name)
			 SELECT gen_random_uuid(), $1, $2
			 WHERE NOT EXISTS (SELECT 1 FROM skills WHERE user_id = $1 AND name = $2)`,
			it.UserID,
			it.Name,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
