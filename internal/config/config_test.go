package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BatchSize is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 4 {
			t.Errorf("expected BatchSize to be 4, got %d", cfg.BatchSize)
		}
	})

	t.Run("inline confirmation is enabled by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.InlineConfirm {
			t.Error("expected InlineConfirm to be true")
		}
	})

	t.Run("no base URL by default", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "" {
			t.Errorf("expected empty BaseURL, got %q", cfg.BaseURL)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		return &Config{
			BaseURL:   "https://example.org/",
			Inputs:    []string{"index.html"},
			BatchSize: 4,
		}
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
	}{
		{
			name:    "valid config returns nil",
			modify:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "multiple inputs is valid",
			modify:  func(c *Config) { c.Inputs = []string{"a.html", "b.html"} },
			wantErr: nil,
		},
		{
			name:    "stdin alone is valid",
			modify:  func(c *Config) { c.Inputs = []string{StdinPath} },
			wantErr: nil,
		},
		{
			name:    "empty inputs returns ErrNoInput",
			modify:  func(c *Config) { c.Inputs = nil },
			wantErr: ErrNoInput,
		},
		{
			name:    "stdin mixed with files returns ErrStdinWithOthers",
			modify:  func(c *Config) { c.Inputs = []string{"a.html", StdinPath} },
			wantErr: ErrStdinWithOthers,
		},
		{
			name:    "missing base URL returns ErrNoBaseURL",
			modify:  func(c *Config) { c.BaseURL = "" },
			wantErr: ErrNoBaseURL,
		},
		{
			name:    "relative base URL returns ErrInvalidBaseURL",
			modify:  func(c *Config) { c.BaseURL = "/site/" },
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "ftp base URL returns ErrInvalidBaseURL",
			modify:  func(c *Config) { c.BaseURL = "ftp://example.org/" },
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "zero batch size returns ErrInvalidBatchSize",
			modify:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "negative batch size returns ErrInvalidBatchSize",
			modify:  func(c *Config) { c.BatchSize = -1 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name: "json and markdown both enabled returns ErrConflictingReportFormats",
			modify: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestConfigApplyFile tests merging of config file values.
func TestConfigApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("fills unset fields", func(t *testing.T) {
		t.Parallel()

		inline := false
		cfg := NewConfig()
		cfg.ApplyFile(&File{
			BaseURL: "https://example.org/",
			OutDir:  "public",
			Organization: Organization{
				Name:         "Example Foundation",
				Abbreviation: "EF",
			},
			InlineConfirm: &inline,
		})

		if cfg.BaseURL != "https://example.org/" {
			t.Errorf("expected base URL from file, got %q", cfg.BaseURL)
		}
		if cfg.OutDir != "public" {
			t.Errorf("expected out dir from file, got %q", cfg.OutDir)
		}
		if cfg.Organization != "Example Foundation" || cfg.Abbreviation != "EF" {
			t.Errorf("unexpected organization %q (%q)", cfg.Organization, cfg.Abbreviation)
		}
		if cfg.InlineConfirm {
			t.Error("expected InlineConfirm to be false")
		}
	})

	t.Run("keeps values already set", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.BaseURL = "https://flag.example/"
		cfg.ApplyFile(&File{BaseURL: "https://file.example/"})

		if cfg.BaseURL != "https://flag.example/" {
			t.Errorf("expected flag base URL to win, got %q", cfg.BaseURL)
		}
		if !cfg.InlineConfirm {
			t.Error("expected InlineConfirm default to be kept when the file omits it")
		}
	})

	t.Run("nil file is ignored", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(nil)
		if cfg.BaseURL != "" {
			t.Errorf("expected empty base URL, got %q", cfg.BaseURL)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.linkguard")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".linkguard")
		content := `base_url: https://example.org/
out_dir: public
inline_confirm: false
organization:
  name: Example Foundation
  abbreviation: EF
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.BaseURL != "https://example.org/" {
			t.Errorf("expected base URL, got %q", cfg.BaseURL)
		}
		if cfg.OutDir != "public" {
			t.Errorf("expected out dir, got %q", cfg.OutDir)
		}
		if cfg.Organization.Name != "Example Foundation" {
			t.Errorf("expected organization name, got %q", cfg.Organization.Name)
		}
		if cfg.Organization.Abbreviation != "EF" {
			t.Errorf("expected abbreviation, got %q", cfg.Organization.Abbreviation)
		}
		if cfg.InlineConfirm == nil || *cfg.InlineConfirm {
			t.Errorf("expected inline_confirm false, got %v", cfg.InlineConfirm)
		}
	})

	t.Run("omitted inline_confirm stays nil", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".linkguard")
		if err := os.WriteFile(configPath, []byte("base_url: https://example.org/\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.InlineConfirm != nil {
			t.Errorf("expected nil InlineConfirm, got %v", *cfg.InlineConfirm)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".linkguard")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("base_url: https://example.org/"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGConfigDir tests the XDG config directory.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if dir == "" {
		t.Fatal("expected non-empty XDG config dir")
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("expected directory to end with %q, got %q", AppName, dir)
	}
}
