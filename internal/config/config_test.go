package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("AWS_REGION")
	os.Unsetenv("HOST")
	os.Unsetenv("PORT")
	os.Unsetenv("WEB_DIR")
	os.Unsetenv("INSTANCES_FILE")
	os.Unsetenv("FLEET_LOG_SCHEDULE")

	cfg := Load()

	if cfg.Region != "eu-central-1" {
		t.Errorf("Region = %q, want eu-central-1", cfg.Region)
	}
	if cfg.Addr() != "127.0.0.1:5000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:5000", cfg.Addr())
	}
	if cfg.WebDir != "web" {
		t.Errorf("WebDir = %q, want web", cfg.WebDir)
	}
	if cfg.InstancesFile != "" {
		t.Errorf("InstancesFile = %q, want empty", cfg.InstancesFile)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "8080")
	t.Setenv("FLEET_LOG_SCHEDULE", "@every 1m")

	cfg := Load()

	if cfg.Region != "us-east-1" {
		t.Errorf("Region = %q, want us-east-1", cfg.Region)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", cfg.Addr())
	}
	if cfg.FleetLogSchedule != "@every 1m" {
		t.Errorf("FleetLogSchedule = %q", cfg.FleetLogSchedule)
	}
}

func TestLoadAllowListBuiltin(t *testing.T) {
	list, err := LoadAllowList("")
	if err != nil {
		t.Fatalf("LoadAllowList(\"\"): %v", err)
	}
	if err := list.Validate("i-02d6e1b688f2184ec"); err != nil {
		t.Errorf("built-in list missing default instance: %v", err)
	}
}

func TestLoadAllowListFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.yaml")
	content := `instances:
  - id: i-0aaa111122223333a
    name: Alpha
    country: de
  - id: i-0demo000000000000
    name: Demo
    country: us
    simulated: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	list, err := LoadAllowList(path)
	if err != nil {
		t.Fatalf("LoadAllowList: %v", err)
	}

	if err := list.Validate("i-0aaa111122223333a"); err != nil {
		t.Errorf("Validate(alpha) = %v", err)
	}
	e := list.Lookup("i-0demo000000000000")
	if !e.Simulated {
		t.Error("demo entry should be simulated")
	}
	if got := list.RealIDs(); len(got) != 1 || got[0] != "i-0aaa111122223333a" {
		t.Errorf("RealIDs() = %v", got)
	}
}

func TestLoadAllowListErrors(t *testing.T) {
	if _, err := LoadAllowList(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("instances: {not: a list"), 0644)
	if _, err := LoadAllowList(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
