package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithEnvKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "test-key")

	cfg, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("Load reported a config file that does not exist")
	}
	if cfg.TMDB.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want env fallback", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.Language != "en-US" {
		t.Errorf("Language = %q, want en-US", cfg.TMDB.Language)
	}
	if cfg.Sync.Pattern != -1 {
		t.Errorf("Pattern = %d, want -1 (auto)", cfg.Sync.Pattern)
	}
	if cfg.TMDB.Concurrency != 10 {
		t.Errorf("Concurrency = %d, want 10", cfg.TMDB.Concurrency)
	}
}

func TestLoadParsesFileAndNormalizesLanguage(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[tmdb]
api_key = "file-key"
language = "pt_br"

[sync]
pattern = 1
strict = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("Load did not report the config file")
	}
	if cfg.TMDB.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file value", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.Language != "pt-BR" {
		t.Errorf("Language = %q, want canonical pt-BR", cfg.TMDB.Language)
	}
	if cfg.Sync.Pattern != 1 || !cfg.Sync.Strict {
		t.Errorf("Sync = %+v, want pattern 1 strict", cfg.Sync)
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")

	_, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Load error = %v, want ErrMissingAPIKey", err)
	}
}

func TestValidateRejectsBadPattern(t *testing.T) {
	cfg := Default()
	cfg.TMDB.APIKey = "key"
	cfg.Sync.Pattern = 99
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate accepted an unsupported pattern")
	}
}

func TestValidateRejectsNonPositiveConcurrency(t *testing.T) {
	cfg := Default()
	cfg.TMDB.APIKey = "key"
	cfg.TMDB.Concurrency = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate accepted zero concurrency")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("sample config is empty")
	}
}
