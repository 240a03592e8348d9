// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/mwiater/matboard/internal/discovery"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "config*.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

// TestLoad checks that a valid file loads with defaults applied and that malformed JSON,
// unknown view settings and missing files are rejected.
func TestLoad(t *testing.T) {
	path := writeTemp(t, `{
        "modelsDir": "data/models",
        "discoverySet": "full_test_set",
        "showNonCompliant": true,
        "hiddenColumns": ["Precision"],
        "sortColumn": "DAF",
        "downloads": {"pdf": "https://example.org/lb.pdf"}
    }`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.ModelsPath() != "data/models" {
		t.Fatalf("expected models dir from file, got %q", cfg.ModelsPath())
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected config path %q, got %q", path, cfg.ConfigPath)
	}
	if cfg.Port() != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port())
	}
	if cfg.LogFilePath() != "matboard.log" {
		t.Fatalf("expected default log file, got %q", cfg.LogFilePath())
	}

	opts, err := cfg.LeaderboardOptions()
	if err != nil {
		t.Fatalf("LeaderboardOptions: %v", err)
	}
	if opts.Set != discovery.FullTestSet || !opts.IncludeNonCompliant || opts.SortKey != "DAF" || opts.Ascending {
		t.Fatalf("unexpected options: %+v", opts)
	}

	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", `{ "modelsDir": `},
		{"unknown discovery set", `{ "discoverySet": "most_stable_100k" }`},
		{"unknown column", `{ "hiddenColumns": ["shoe_size"] }`},
		{"unknown sort", `{ "sortColumn": "shoe_size" }`},
	}
	for _, tt := range tests {
		if _, err := Load(writeTemp(t, tt.payload)); err == nil {
			t.Fatalf("%s: Load() should have failed", tt.name)
		}
	}

	if _, err := Load("nonexistent.json"); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config
	if cfg.ModelsPath() != "models" {
		t.Fatalf("expected default models dir, got %q", cfg.ModelsPath())
	}
	opts, err := cfg.LeaderboardOptions()
	if err != nil {
		t.Fatalf("LeaderboardOptions: %v", err)
	}
	if opts.Set != discovery.UniquePrototypes {
		t.Fatalf("expected default set, got %s", opts.Set)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero config should validate: %v", err)
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "", nil, Config{ServerPort: "9000", Downloads: map[string]string{"svg": "https://x/lb.svg"}})
	out := buf.String()
	for _, want := range []string{"No config file loaded", "Server Port:        9000", "svg:   https://x/lb.svg", "Sort Column:        F1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output; got:\n%s", want, out)
		}
	}

	buf.Reset()
	ShowConfig(&buf, "config/config.json", &Config{ModelsDir: "m"}, Config{})
	if !strings.Contains(buf.String(), "Config file: config/config.json") || !strings.Contains(buf.String(), "Models Dir:         m") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
