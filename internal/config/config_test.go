package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "freesscan.yaml", "threads: 4\nmax_bytes: 123\nworkers: 50\ntimeout: 2s\nbanner_timeout: 250ms\nstore: badger:/tmp/x\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 4 {
		t.Fatalf("expected threads=4, got %#v", cfg.Threads)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 123 {
		t.Fatalf("expected max_bytes=123, got %#v", cfg.MaxBytes)
	}
	if cfg.Workers == nil || *cfg.Workers != 50 {
		t.Fatalf("expected workers=50")
	}
	if cfg.TimeoutDuration() != 2*time.Second || cfg.BannerTimeoutDuration() != 250*time.Millisecond {
		t.Fatalf("unexpected durations %v %v", cfg.TimeoutDuration(), cfg.BannerTimeoutDuration())
	}
	if cfg.Store == nil || *cfg.Store != "badger:/tmp/x" {
		t.Fatalf("expected store, got %#v", cfg.Store)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"dur.yml":     "timeout: soon\n",
		"neg.yml":     "banner_timeout: -1s\n",
		"bytes.yml":   "max_bytes: 0\n",
		"workers.yml": "workers: -3\n",
		"yaml.yml":    "threads: [\n",
	} {
		if _, err := LoadFile(writeTemp(t, dir, name, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "freesscan.yaml", "threads: 1\n")
	writeTemp(t, dir, ".freesscan.yaml", "threads: 7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 7 {
		t.Fatalf("expected threads=7 from .freesscan.yaml, got %#v", cfg.Threads)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	if _, err := LoadLocal(t.TempDir()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "freesscan")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTemp(t, cfgDir, "config.yml", "workers: 9\n")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Workers == nil || *cfg.Workers != 9 {
		t.Fatalf("expected workers=9 from global config, got %#v", cfg.Workers)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := LoadGlobal(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".freesscan.yml")
	workers := 25
	to := "3s"
	if err := Write(p, FileConfig{Workers: &workers, Timeout: &to}, false); err != nil {
		t.Fatal(err)
	}
	if err := Write(p, FileConfig{}, false); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if *cfg.Workers != 25 || cfg.TimeoutDuration() != 3*time.Second {
		t.Fatalf("unexpected %#v", cfg)
	}
}

func TestLoadDB_Defaults(t *testing.T) {
	for _, k := range []string{"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSLMODE"} {
		t.Setenv(k, "")
	}
	c, err := LoadDB("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Host != "localhost" || c.Port != 5432 || c.Name != "security_scanner" || c.User != "scanner" {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if !strings.HasPrefix(c.DSN(), "postgres://scanner@localhost:5432/security_scanner") {
		t.Fatalf("unexpected dsn %s", c.DSN())
	}
}

func TestLoadDB_EnvFileOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "from-env")
	t.Setenv("DB_USER", "envuser")
	p := writeTemp(t, t.TempDir(), ".env", "DB_HOST=db.internal\nDB_PORT=6543\nDB_PASSWORD=p@ss\n")
	c, err := LoadDB(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Host != "db.internal" || c.Port != 6543 || c.User != "envuser" || c.Password != "p@ss" {
		t.Fatalf("unexpected %+v", c)
	}
	if os.Getenv("DB_HOST") != "from-env" {
		t.Fatal("env file must not mutate the process environment")
	}
	if !strings.Contains(c.DSN(), "envuser:p%40ss@db.internal:6543") {
		t.Fatalf("unexpected dsn %s", c.DSN())
	}
}

func TestLoadDB_BadPort(t *testing.T) {
	t.Setenv("DB_PORT", "five")
	if _, err := LoadDB(""); err == nil {
		t.Fatal("expected error")
	}
}
