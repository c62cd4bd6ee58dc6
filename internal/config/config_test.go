package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("does-not-exist.yml")
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}

	if cfg.Server.Port != "4000" {
		t.Errorf("expected default port 4000, got %s", cfg.Server.Port)
	}
	if cfg.Database.Name != "vigil_network" {
		t.Errorf("expected default database vigil_network, got %s", cfg.Database.Name)
	}
	if cfg.Database.MaxOpenConns != 5 {
		t.Errorf("expected default pool limit 5, got %d", cfg.Database.MaxOpenConns)
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		t.Error("expected default allowed origins")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig("does-not-exist.yml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected DB_HOST override, got %s", cfg.Database.Host)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("expected PORT override, got %s", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[0] != "https://a.example" {
		t.Errorf("expected parsed origins, got %v", cfg.Server.AllowedOrigins)
	}

	want := "postgres://postgres:@db.internal:5432/vigil_network?sslmode=disable"
	if got := cfg.DatabaseURL(); got != want {
		t.Errorf("DatabaseURL() = %s, want %s", got, want)
	}
}
