package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"VALLEY_SEED", "VALLEY_DB", "VALLEY_LOG_LEVEL", "VALLEY_CONTENT", "VALLEY_TERRAIN"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 0 || cfg.DB != "" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if s, _ := cfg.Strategy(); s != world.StrategyNoise {
		t.Fatalf("strategy = %s", s)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VALLEY_SEED", "42")
	t.Setenv("VALLEY_DB", "/tmp/valley.db")
	t.Setenv("VALLEY_LOG_LEVEL", "debug")
	t.Setenv("VALLEY_TERRAIN", "Rules")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 42 || cfg.DB != "/tmp/valley.db" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if s, _ := cfg.Strategy(); s != world.StrategyRules {
		t.Fatalf("strategy = %s", s)
	}
	if lvl, _ := cfg.Level(); lvl != slog.LevelDebug {
		t.Fatalf("level = %s", lvl)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"seed":    {"VALLEY_SEED", "abc"},
		"terrain": {"VALLEY_TERRAIN", "islands"},
		"level":   {"VALLEY_LOG_LEVEL", "loud"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%s accepted", kv[0], kv[1])
			}
		})
	}
}
