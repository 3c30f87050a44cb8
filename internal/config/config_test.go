package config

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("host", "", "")
	fs.Int("port", DefaultPort, "")
	fs.String("spec", DefaultSpecPath, "")
	fs.String("prefix", DefaultPrefix, "")
	fs.String("cors-origins", "", "")
	fs.Bool("ops", false, "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestFromViperDefaults(t *testing.T) {
	v, err := NewViper(newFlags(t))
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if cfg.Port != 3000 {
		t.Fatalf("Port=%d, want 3000", cfg.Port)
	}
	if cfg.SpecPath != "./openapidist.yaml" {
		t.Fatalf("SpecPath=%q, want ./openapidist.yaml", cfg.SpecPath)
	}
	if cfg.Prefix != "/api-docs" {
		t.Fatalf("Prefix=%q, want /api-docs", cfg.Prefix)
	}
	if cfg.OpsEndpoints {
		t.Fatalf("OpsEndpoints=true, want false")
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Fatalf("ShutdownTimeout=%s, want %s", cfg.ShutdownTimeout, DefaultShutdownTimeout)
	}
}

func TestFromViperFlagBeatsEnv(t *testing.T) {
	t.Setenv("APIDOCS_PORT", "4000")
	t.Setenv("APIDOCS_PREFIX", "docs/")
	t.Setenv("APIDOCS_CORS_ORIGINS", "http://a.test, http://b.test/")

	v, err := NewViper(newFlags(t, "--port", "5000"))
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if cfg.Port != 5000 {
		t.Fatalf("Port=%d, want 5000", cfg.Port)
	}
	if cfg.Prefix != "/docs" {
		t.Fatalf("Prefix=%q, want /docs", cfg.Prefix)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://a.test" || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("CORSOrigins=%v, want [http://a.test http://b.test]", cfg.CORSOrigins)
	}
}

func TestReadFileMergesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apidocs.yaml")
	if err := os.WriteFile(path, []byte("spec: /srv/openapi.json\nops: true\nshutdown-timeout: 3s\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	v, err := NewViper(nil)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	if err := ReadFile(v, path); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if cfg.SpecPath != "/srv/openapi.json" {
		t.Fatalf("SpecPath=%q, want /srv/openapi.json", cfg.SpecPath)
	}
	if !cfg.OpsEndpoints {
		t.Fatalf("OpsEndpoints=false, want true")
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("ShutdownTimeout=%s, want 3s", cfg.ShutdownTimeout)
	}
}

func TestReadFileMissing(t *testing.T) {
	v, err := NewViper(nil)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	if err := ReadFile(v, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("ReadFile error=nil, want error")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := []Config{
		{Port: -1, SpecPath: "a.yaml", Prefix: "/api-docs"},
		{Port: 70000, SpecPath: "a.yaml", Prefix: "/api-docs"},
		{Port: 3000, SpecPath: "", Prefix: "/api-docs"},
		{Port: 3000, SpecPath: "a.yaml", Prefix: "/"},
		{Port: 3000, SpecPath: "a.yaml", Prefix: "api-docs"},
	}
	for _, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("Validate(%+v) error=nil, want error", cfg)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("Validate(Default()) error: %v", err)
	}
}

func TestDocsURL(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if got := cfg.DocsURL(nil); got != "http://localhost:3000/api-docs" {
		t.Fatalf("DocsURL=%q, want %q", got, "http://localhost:3000/api-docs")
	}

	cfg.Host = "127.0.0.1"
	bound := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 41234}
	if got := cfg.DocsURL(bound); got != "http://127.0.0.1:41234/api-docs" {
		t.Fatalf("DocsURL=%q, want %q", got, "http://127.0.0.1:41234/api-docs")
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{Port: 3000, Prefix: "  ", ShutdownTimeout: -time.Second}
	cfg.Normalize()
	if cfg.Prefix != DefaultPrefix {
		t.Fatalf("Prefix=%q, want %q", cfg.Prefix, DefaultPrefix)
	}
	if cfg.SpecPath != DefaultSpecPath {
		t.Fatalf("SpecPath=%q, want %q", cfg.SpecPath, DefaultSpecPath)
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Fatalf("ShutdownTimeout=%s, want %s", cfg.ShutdownTimeout, DefaultShutdownTimeout)
	}
}
