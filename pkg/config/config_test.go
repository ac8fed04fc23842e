package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNPrefersExplicitDSN(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://u:p@localhost:5432/sellerboard"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	if cfg.DSN != "postgres://u:p@localhost:5432/sellerboard" {
		t.Fatalf("DSN should be untouched, got %s", cfg.DSN)
	}
}

func TestEnsureDSNBuildsFromLegacyParts(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "db.internal",
		LegacyPort:     5433,
		LegacyUser:     "seller",
		LegacyPassword: "s3cret",
		LegacyName:     "analytics",
		LegacySSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	for _, want := range []string{"db.internal:5433", "seller", "analytics", "sslmode=require"} {
		if !strings.Contains(cfg.DSN, want) {
			t.Fatalf("DSN %q missing %q", cfg.DSN, want)
		}
	}
}

func TestEnsureDSNReportsMissingParts(t *testing.T) {
	cfg := DBConfig{LegacyHost: "db.internal"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error for missing legacy vars")
	}
	if !strings.Contains(err.Error(), EnvDBUser) || !strings.Contains(err.Error(), EnvDBName) {
		t.Fatalf("error should name missing vars, got %v", err)
	}
}

func TestAppEnvHelpers(t *testing.T) {
	app := AppConfig{Env: "Development"}
	if !app.IsDev() || app.IsProd() {
		t.Fatal("expected dev env")
	}
	app.Env = "production"
	if !app.IsProd() || app.IsDev() {
		t.Fatal("expected prod env")
	}
}
