package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"

	"github.com/jmylchreest/shardscout/pkg/crystaldoc"
	"github.com/jmylchreest/shardscout/pkg/fetcher"
	"github.com/jmylchreest/shardscout/pkg/shards"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shardscout.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		Timeout:       30 * time.Second,
		MaxRedirects:  fetcher.DefaultMaxRedirects,
		MaxBodySize:   "0",
		ShardsURL:     shards.DefaultOrigin,
		CrystaldocURL: crystaldoc.DefaultOrigin,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestInit_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
user_agent: my-agent/1.0
timeout: 5s
max_redirects: 3
shards_url: http://localhost:8080
`)

	v := viper.New()
	if err := Init(v, path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.UserAgent != "my-agent/1.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.MaxRedirects != 3 {
		t.Errorf("MaxRedirects = %d", cfg.MaxRedirects)
	}
	if cfg.ShardsURL != "http://localhost:8080" {
		t.Errorf("ShardsURL = %q", cfg.ShardsURL)
	}
	if cfg.CrystaldocURL != crystaldoc.DefaultOrigin {
		t.Errorf("CrystaldocURL = %q, want default", cfg.CrystaldocURL)
	}
}

func TestInit_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "timeout: 5s\n")
	t.Setenv("SHARDSCOUT_TIMEOUT", "9s")
	t.Setenv("SHARDSCOUT_CRYSTALDOC_URL", "http://mirror.test")

	v := viper.New()
	if err := Init(v, path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Timeout != 9*time.Second {
		t.Errorf("Timeout = %v, want 9s from env", cfg.Timeout)
	}
	if cfg.CrystaldocURL != "http://mirror.test" {
		t.Errorf("CrystaldocURL = %q", cfg.CrystaldocURL)
	}
}

func TestInit_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Timeout:       time.Second,
		ShardsURL:     "https://shards.info",
		CrystaldocURL: "https://crystaldoc.info",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be greater than 0"},
		{"negative redirects disable following", func(c *Config) { c.MaxRedirects = -1 }, ""},
		{"bad shards url", func(c *Config) { c.ShardsURL = "not a url" }, "shards_url must be a URL"},
		{"missing crystaldoc url", func(c *Config) { c.CrystaldocURL = "" }, "crystaldoc_url is required"},
		{"body size", func(c *Config) { c.MaxBodySize = "20MB" }, ""},
		{"bad body size", func(c *Config) { c.MaxBodySize = "lots" }, "max_body_size must be a size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Fetcher(t *testing.T) {
	cfg := Config{UserAgent: "ua", Timeout: 2 * time.Second, MaxRedirects: 4, MaxBodySize: "2KiB"}
	want := fetcher.Config{UserAgent: "ua", Timeout: 2 * time.Second, MaxRedirects: 4, MaxBodySize: 2048}
	if diff := cmp.Diff(want, cfg.Fetcher()); diff != "" {
		t.Errorf("Fetcher() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"1KB", 1000, false},
		{"1KiB", 1024, false},
		{" 10MB ", 10_000_000, false},
		{"lots", 0, true},
		{"8GB", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseByteSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseByteSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseByteSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
