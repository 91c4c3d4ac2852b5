package seeder

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestMissingColumns_ReportsAllSorted(t *testing.T) {
	have := map[string]struct{}{"id": {}, "name": {}}
	got := missingColumns(have, []string{"title", "id", "company_id", "name"})
	want := []string{"company_id", "title"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("missing = %v, want %v", got, want)
	}
	if got := missingColumns(have, []string{"id"}); len(got) != 0 {
		t.Fatalf("expected nothing missing, got %v", got)
	}
}

func TestEnsureSeedSchema_RejectsUnknownTableAndNilDB(t *testing.T) {
	if err := EnsureSeedSchema(context.Background(), nil, "jobs"); err == nil {
		t.Fatalf("expected error for nil db")
	}
	if err := EnsureSeedSchema(context.Background(), stubDB{}, "users"); err == nil {
		t.Fatalf("expected error for unknown table")
	}
}

func TestSeedColumns_ExistInMigrations(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "migration", "sql", "*.sql"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no migrations found: %v", err)
	}
	var ddl strings.Builder
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		ddl.Write(b)
	}

	for table, cols := range seedColumns {
		body := createTableBody(ddl.String(), table)
		if body == "" {
			t.Fatalf("table %s not created by migrations", table)
		}
		for _, col := range cols {
			if !strings.Contains(body, "\n\t"+col+" ") {
				t.Errorf("column %s.%s not created by migrations", table, col)
			}
		}
	}
}

func createTableBody(ddl, table string) string {
	head := "CREATE TABLE IF NOT EXISTS " + table + " ("
	i := strings.Index(ddl, head)
	if i < 0 {
		return ""
	}
	rest := ddl[i+len(head):]
	end := strings.Index(rest, "\n);")
	if end < 0 {
		return ""
	}
	return rest[:end]
}
