package seeder

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"jobboard/internal/database"
)

// seedColumns lists, per table, the columns the demo seeders write. They must
// match what the V1/V2 migrations create.
var seedColumns = map[string][]string{
	"companies": {"id", "name", "metadata"},
	"jobs":      {"id", "company_id", "title", "requirements"},
	"skills":    {"id", "user_id", "name", "created_at"},
}

// ErrSchemaMismatch is wrapped by every missing-column error.
var ErrSchemaMismatch = errors.New("schema mismatch")

// EnsureSeedSchema checks the given tables against seedColumns and reports
// every missing column in one error. Run `migrate` first when it fails.
func EnsureSeedSchema(ctx context.Context, db database.DB, tables ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	var errs []error
	for _, table := range tables {
		want, ok := seedColumns[table]
		if !ok {
			return fmt.Errorf("no seed columns known for table %q", table)
		}
		have, err := tableColumns(ctx, db, table)
		if err != nil {
			return fmt.Errorf("read columns of %s: %w", table, err)
		}
		for _, col := range missingColumns(have, want) {
			errs = append(errs, fmt.Errorf("%w: missing column %s.%s", ErrSchemaMismatch, table, col))
		}
	}
	return errors.Join(errs...)
}

func tableColumns(ctx context.Context, db database.DB, table string) (map[string]struct{}, error) {
	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	have := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		have[c] = struct{}{}
	}
	return have, rows.Err()
}

// missingColumns returns the wanted columns absent from have, sorted.
func missingColumns(have map[string]struct{}, want []string) []string {
	var out []string
	for _, col := range want {
		if _, ok := have[col]; !ok {
			out = append(out, col)
		}
	}
	sort.Strings(out)
	return out
}
