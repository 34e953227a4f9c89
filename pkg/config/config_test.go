package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("ATELIER_JWT_SECRET", "secret")
	t.Setenv("ATELIER_ADMIN_PASSWORD_HASH", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if !cfg.App.IsDev() {
		t.Fatalf("expected dev env default, got %q", cfg.App.Env)
	}
	if cfg.DB.Driver != DriverSQLite {
		t.Fatalf("expected sqlite default driver, got %q", cfg.DB.Driver)
	}
	if cfg.Save.Debounce != time.Second {
		t.Fatalf("expected 1s debounce default, got %s", cfg.Save.Debounce)
	}
	if cfg.Save.MinVisible != 600*time.Millisecond {
		t.Fatalf("expected 600ms min visible default, got %s", cfg.Save.MinVisible)
	}
	if cfg.Save.SavedDisplay != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s saved display default, got %s", cfg.Save.SavedDisplay)
	}
	if cfg.JWT.SessionTTL() != 12*time.Hour {
		t.Fatalf("expected 12h session ttl default, got %s", cfg.JWT.SessionTTL())
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("ATELIER_JWT_SECRET", "secret")
	t.Setenv("ATELIER_ADMIN_PASSWORD_HASH", "hash")
	t.Setenv("ATELIER_DB_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestGooseDialect(t *testing.T) {
	if (DBConfig{Driver: DriverSQLite}).GooseDialect() != "sqlite3" {
		t.Fatalf("expected sqlite3 dialect")
	}
	if (DBConfig{Driver: DriverPostgres}).GooseDialect() != "postgres" {
		t.Fatalf("expected postgres dialect")
	}
}
