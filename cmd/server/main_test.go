package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"trapzone/internal/app/game"
	"trapzone/internal/domain/hunting"
)

func TestIntEnv_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("TRAPZONE_TEST_INT", "abc")
	if got := intEnv("TRAPZONE_TEST_INT", 7); got != 7 {
		t.Fatalf("intEnv()=%d want 7", got)
	}
	t.Setenv("TRAPZONE_TEST_INT", " 42 ")
	if got := intEnv("TRAPZONE_TEST_INT", 7); got != 42 {
		t.Fatalf("intEnv()=%d want 42", got)
	}
}

func TestLoadConfig_DefaultsWithEnvOverrides(t *testing.T) {
	t.Setenv("TRAPZONE_CONFIG", "")
	t.Setenv("TRAPZONE_START_MONEY", "250")
	t.Setenv("TRAPZONE_TAX_MIN", "20")
	t.Setenv("TRAPZONE_TAX_MAX", "20")
	t.Setenv("TRAPZONE_INITIAL_STOCK", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.StartMoney != 250 || cfg.TaxMin != 20 || cfg.TaxMax != 20 {
		t.Fatalf("unexpected overrides: start=%d tax=[%d,%d]", cfg.StartMoney, cfg.TaxMin, cfg.TaxMax)
	}
	if cfg.InitialStock != hunting.DefaultConfig().InitialStock {
		t.Fatalf("expected default stock, got %d", cfg.InitialStock)
	}
}

func TestLoadConfig_RejectsInvertedTaxRange(t *testing.T) {
	t.Setenv("TRAPZONE_CONFIG", "")
	t.Setenv("TRAPZONE_START_MONEY", "")
	t.Setenv("TRAPZONE_TAX_MIN", "40")
	t.Setenv("TRAPZONE_TAX_MAX", "10")
	t.Setenv("TRAPZONE_INITIAL_STOCK", "")

	if _, err := loadConfig(); !errors.Is(err, hunting.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tight.json")
	if err := os.WriteFile(path, []byte(`{"start_money": 60, "goal_balance": 500}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TRAPZONE_CONFIG", path)
	t.Setenv("TRAPZONE_START_MONEY", "")
	t.Setenv("TRAPZONE_TAX_MIN", "")
	t.Setenv("TRAPZONE_TAX_MAX", "")
	t.Setenv("TRAPZONE_INITIAL_STOCK", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.StartMoney != 60 || cfg.GoalBalance != 500 {
		t.Fatalf("unexpected file config: start=%d goal=%d", cfg.StartMoney, cfg.GoalBalance)
	}
}

func TestResolveScenariosRoot_UsesEnv(t *testing.T) {
	t.Setenv("TRAPZONE_SCENARIOS_DIR", "/tmp/custom-scenarios")
	if got := resolveScenariosRoot(); got != "/tmp/custom-scenarios" {
		t.Fatalf("resolveScenariosRoot()=%q want %q", got, "/tmp/custom-scenarios")
	}
	t.Setenv("TRAPZONE_SCENARIOS_DIR", "")
	if got := resolveScenariosRoot(); got != "./scenarios" {
		t.Fatalf("resolveScenariosRoot()=%q want %q", got, "./scenarios")
	}
}

func TestMigrationsFS_EmbeddedByDefault(t *testing.T) {
	t.Setenv("TRAPZONE_MIGRATIONS_DIR", "")
	data, err := fs.ReadFile(migrationsFS(), "0001_journal.sql")
	if err != nil {
		t.Fatalf("read embedded migration: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected embedded migration content")
	}
}

func TestEvictClosedSessions_DropsFinishedSessions(t *testing.T) {
	cfg := hunting.DefaultConfig()
	cfg.StartMoney = 0
	registry := game.NewRegistry()
	uc := game.UseCase{Registry: registry, Config: cfg, NewID: func() string { return "broke" }}
	if _, err := uc.Start(context.Background(), game.StartRequest{}); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if registry.Len() != 1 {
		t.Fatalf("expected the finished session to stay live until evicted")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go evictClosedSessions(ctx, registry, 0, 5*time.Millisecond, slog.New(slog.DiscardHandler))

	deadline := time.Now().Add(2 * time.Second)
	for registry.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected finished session evicted, still %d live", registry.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
