package postgres

import (
	"testing"

	"jobboard/internal/config"
)

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "jobboard",
		DBName:     "jobboard",
		DBSSLMode:  "disable",
		DBPassword: "it's secret",
	})
	want := `host=db port=5432 user=jobboard dbname=jobboard sslmode=disable password='it\'s secret'`
	if got != want {
		t.Fatalf("DSN mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestDSN_SkipsEmpty(t *testing.T) {
	got := DSN(config.DatabaseConfig{DBHost: "localhost"})
	if got != "host=localhost" {
		t.Fatalf("unexpected dsn: %q", got)
	}
}
