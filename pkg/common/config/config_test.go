package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Match.MaxKmNamed != 60 || cfg.Match.MaxKmUnnamed != 40 {
		t.Fatalf("unexpected default gates: %+v", cfg.Match)
	}
	if cfg.Match.MinFinalNamed != 0.55 || cfg.Match.MinFinalUnnamed != 0.65 {
		t.Fatalf("unexpected default thresholds: %+v", cfg.Match)
	}
}

func TestLoadPolicyFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	err := os.WriteFile(path, []byte("max_km_named: 25\nmin_final_named: 0.7\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("MATCH_POLICY_FILE", path)

	cfg := Load()
	if cfg.Match.MaxKmNamed != 25 {
		t.Fatalf("yaml gate not applied: %+v", cfg.Match)
	}
	if cfg.Match.MinFinalNamed != 0.7 {
		t.Fatalf("yaml threshold not applied: %+v", cfg.Match)
	}
	// Untouched fields keep their defaults.
	if cfg.Match.MaxKmUnnamed != 40 {
		t.Fatalf("default lost: %+v", cfg.Match)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("max_km_named: 25\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MATCH_POLICY_FILE", path)
	t.Setenv("MATCH_MAX_KM_NAMED", "80")

	cfg := Load()
	if cfg.Match.MaxKmNamed != 80 {
		t.Fatalf("env must win over yaml: %+v", cfg.Match)
	}
}
