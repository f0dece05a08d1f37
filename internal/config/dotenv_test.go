package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv_NotExist(t *testing.T) {
	oldHome := os.Getenv("HOME")
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })

	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	oldHome := os.Getenv("HOME")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })

	scoutDir := filepath.Join(home, ".scout")
	if err := os.MkdirAll(scoutDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(scoutDir, ".env"), []byte("# comment\nA=1\nB=two\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if m["A"] != "1" || m["B"] != "two" {
		t.Fatalf("unexpected map: %v", m)
	}
}

func TestGetConfigValue_EnvOverridesDotEnv(t *testing.T) {
	oldHome := os.Getenv("HOME")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })

	scoutDir := filepath.Join(home, ".scout")
	if err := os.MkdirAll(scoutDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(scoutDir, ".env"), []byte("K=fromdotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// env override
	t.Setenv("K", "fromenv")

	v, err := GetConfigValue("K")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "fromenv" {
		t.Fatalf("expected env override, got %q", v)
	}
}

func TestEnsureDotEnvTemplate_DoesNotOverwrite(t *testing.T) {
	oldHome := os.Getenv("HOME")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })

	scoutDir := filepath.Join(home, ".scout")
	if err := os.MkdirAll(scoutDir, 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(scoutDir, ".env")
	if err := os.WriteFile(p, []byte("SCOUT_HISTORY_BACKEND=sqlite\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "SCOUT_HISTORY_BACKEND=sqlite\n" {
		t.Fatalf("template overwrote existing file: %q", string(b))
	}
}

func TestEnsureDotEnvTemplate_CreatesWhenMissing(t *testing.T) {
	oldHome := os.Getenv("HOME")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })

	scoutDir := filepath.Join(home, ".scout")
	if err := os.MkdirAll(scoutDir, 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(scoutDir, ".env")

	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) == 0 {
		t.Fatalf("expected non-empty template")
	}
}

func TestLoadDotEnv_QuotedValuesAndExport(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SCOUT_SERVER_ADDR", "")

	scoutDir := filepath.Join(home, ".scout")
	if err := os.MkdirAll(scoutDir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := "export SCOUT_SERVER_ADDR=\":9090\"\nSCOUT_LOG_LEVEL='debug'\n"
	if err := os.WriteFile(filepath.Join(scoutDir, ".env"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if m["SCOUT_SERVER_ADDR"] != ":9090" {
		t.Fatalf("unexpected addr: %q", m["SCOUT_SERVER_ADDR"])
	}
	if m["SCOUT_LOG_LEVEL"] != "debug" {
		t.Fatalf("unexpected level: %q", m["SCOUT_LOG_LEVEL"])
	}
}

func TestLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SCOUT_LOG_LEVEL", "")

	lvl, err := LogLevel()
	if err != nil || lvl != slog.LevelWarn {
		t.Fatalf("default level: %v %v", lvl, err)
	}

	t.Setenv("SCOUT_LOG_LEVEL", "debug")
	lvl, err = LogLevel()
	if err != nil || lvl != slog.LevelDebug {
		t.Fatalf("debug level: %v %v", lvl, err)
	}

	t.Setenv("SCOUT_LOG_LEVEL", "loud")
	if _, err := LogLevel(); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}
