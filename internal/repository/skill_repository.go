package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/skill"
)

type SkillRepository interface {
	// ListAll returns every (candidate, skill) row.
	ListAll(ctx context.Context) ([]skill.CandidateSkill, error)
	FindByUserID(ctx context.Context, userID string) ([]skill.CandidateSkill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListAll(ctx context.Context) ([]skill.CandidateSkill, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id, name FROM skills`)
	if err != nil {
		return nil, err
	}
	return scanSkills(rows)
}

func (r *PostgresSkillRepository) FindByUserID(ctx context.Context, userID string) ([]skill.CandidateSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, name
		 FROM skills
		 WHERE user_id = $1
		 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return scanSkills(rows)
}

func scanSkills(rows database.Rows) ([]skill.CandidateSkill, error) {
	defer rows.Close()

	out := make([]skill.CandidateSkill, 0)
	for rows.Next() {
		var s skill.CandidateSkill
		if err := rows.Scan(&s.UserID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
