package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.DatabaseDSN != "file:gestion_ingresos.db" {
		t.Errorf("DatabaseDSN = %s, want local sqlite file", cfg.DatabaseDSN)
	}
	if !cfg.Migrations {
		t.Error("Migrations should default to true")
	}
	if cfg.Seed {
		t.Error("Seed should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/ingresos")
	t.Setenv("RUN_SEED", "true")
	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %s, want 9000", cfg.Port)
	}
	if cfg.DatabaseDSN != "postgres://u:p@localhost:5432/ingresos" {
		t.Errorf("DatabaseDSN not overridden: %s", cfg.DatabaseDSN)
	}
	if !cfg.Seed {
		t.Error("RUN_SEED=true not honored")
	}
}

func TestParseBoolInvalid(t *testing.T) {
	t.Setenv("RUN_MIGRATIONS", "banana")
	if !ParseBool("RUN_MIGRATIONS", true) {
		t.Error("invalid boolean should fall back to default")
	}
}
