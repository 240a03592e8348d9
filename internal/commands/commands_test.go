// internal/commands/commands_test.go
package matboard

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

const modelTemplate = `
model_name: NAME
model_version: "1.0"
authors:
  - name: Jane Doe
    affiliation: Lab
repo: https://github.com/example/model
doi: https://doi.org/10.0/example
paper: https://arxiv.org/abs/0000.00000
requirements:
  torch: 2.0.1
trained_for_benchmark: COMPLIANT
training_set: [MPtrj]
model_params: 1000
n_estimators: 1
train_task: S2EFS
test_task: IS2RE-SR
model_type: UIP
targets: EFS_G
metrics:
  phonons: not available
  geo_opt: not available
  discovery:
    unique_prototypes:
      F1: SCORE
      DAF: 4.1
`

func modelDoc(name string, compliant bool, f1 string) string {
	r := strings.NewReplacer("NAME", name, "COMPLIANT", map[bool]string{true: "true", false: "false"}[compliant], "SCORE", f1)
	return r.Replace(modelTemplate)
}

// writeModels creates a models directory with two compliant models and one non-compliant one.
func writeModels(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"alpha.yml":  modelDoc("Alpha", true, "0.7"),
		"bravo.yml":  modelDoc("Bravo", true, "0.8"),
		"secret.yml": modelDoc("Secret", false, "0.9"),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write model: %v", err)
		}
	}
	return dir
}

// run executes the root command with a fresh config, the given models directory and args.
func run(t *testing.T, modelsDir string, args ...string) (string, error) {
	t.Helper()
	configPath := useConfig(t, "{}")

	var b bytes.Buffer
	rootCmd.SetOut(&b)
	rootCmd.SetErr(&b)
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		color.NoColor = noColor
	})

	full := []string{"--config", configPath, "--modelsDir", modelsDir, "--logFile", filepath.Join(t.TempDir(), "matboard.log")}
	rootCmd.SetArgs(append(full, args...))
	_, err := rootCmd.ExecuteC()
	return b.String(), err
}

func TestTableCommand(t *testing.T) {
	out, err := run(t, writeModels(t), "table")
	if err != nil {
		t.Fatalf("table: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Best on Unique prototypes: Bravo (F1 0.800, DAF 4.10)") {
		t.Fatalf("expected best summary; got:\n%s", out)
	}
	if strings.Contains(out, "Secret") {
		t.Fatalf("expected non-compliant model to be hidden; got:\n%s", out)
	}
	table := out[strings.Index(out, "\n\n"):]
	if strings.Index(table, "Bravo") > strings.Index(table, "Alpha") {
		t.Fatalf("expected Bravo ranked above Alpha; got:\n%s", out)
	}
}

func TestTableCommandNonCompliantJSON(t *testing.T) {
	out, err := run(t, writeModels(t), "--showNonCompliant", "--jsonMode", "table")
	if err != nil {
		t.Fatalf("table: %v\n%s", err, out)
	}
	var rows []map[string]string
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode table JSON: %v\n%s", err, out)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0]["model"] != "Secret *" {
		t.Fatalf("expected marked non-compliant model first, got %q", rows[0]["model"])
	}
}

func TestBestCommandOnSetWithoutData(t *testing.T) {
	out, err := run(t, writeModels(t), "--discoverySet", "most_stable_10k", "best")
	if err != nil {
		t.Fatalf("best: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No best model for 10k most stable") {
		t.Fatalf("expected placeholder; got:\n%s", out)
	}
}

func TestShowModelCommand(t *testing.T) {
	dir := writeModels(t)

	out, err := run(t, dir, "show", "model", "Alpha")
	if err != nil {
		t.Fatalf("show model: %v\n%s", err, out)
	}
	for _, want := range []string{"Alpha", "Jane Doe (Lab)", "Unique prototypes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output; got:\n%s", want, out)
		}
	}

	if _, err := run(t, dir, "show", "model", "Nope"); err == nil {
		t.Fatalf("expected error for unknown model")
	}
}

func TestValidateCommand(t *testing.T) {
	dir := writeModels(t)

	out, err := run(t, dir, "validate")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "PASS Alpha") || !strings.Contains(out, "3 valid, 0 rejected") {
		t.Fatalf("unexpected validate output:\n%s", out)
	}

	broken := strings.Replace(modelDoc("Broken", true, "0.5"), "model_type: UIP", "model_type: CNN", 1)
	if err := os.WriteFile(filepath.Join(dir, "broken.yml"), []byte(broken), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	out, err = run(t, dir, "validate")
	if err == nil {
		t.Fatalf("expected validate to fail with a broken model")
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "model_type") {
		t.Fatalf("expected FAIL line naming model_type; got:\n%s", out)
	}
}

func TestExportCommandMarkdown(t *testing.T) {
	output := filepath.Join(t.TempDir(), "leaderboard.md")
	t.Cleanup(func() {
		exportFormat = "md"
		exportOutput = ""
	})

	out, err := run(t, writeModels(t), "export", "--format", "md", "--output", output)
	if err != nil {
		t.Fatalf("export: %v\n%s", err, out)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "| **Bravo** |") {
		t.Fatalf("expected bold best model in report; got:\n%s", data)
	}
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, writeModels(t), "schema")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if _, ok := schema["properties"]; !ok {
		t.Fatalf("expected properties in schema")
	}
}

func TestLoadSessionWithoutModels(t *testing.T) {
	out, err := run(t, t.TempDir(), "table")
	if err == nil || !strings.Contains(out, "no valid model records") {
		t.Fatalf("expected error for empty models dir; err=%v out=%s", err, out)
	}
}

func TestShowConfigFileReadsOnlyThatFile(t *testing.T) {
	t.Cleanup(func() {
		if f := showConfigCmd.Flags().Lookup("file"); f != nil {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	path := writeTempConfig(t, `{"modelsDir": "other-models", "sortColumn": "DAF"}`)

	out, err := run(t, writeModels(t), "--sortColumn", "Precision", "show", "config", "--file", path)
	if err != nil {
		t.Fatalf("show config --file: %v\n%s", err, out)
	}
	for _, want := range []string{"Config file: " + path, "Models Dir:         other-models", "Sort Column:        DAF"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output; got:\n%s", want, out)
		}
	}

	bad := writeTempConfig(t, `{"discoverySet": "half_test_set"}`)
	if _, err := run(t, writeModels(t), "show", "config", "--file", bad); err == nil {
		t.Fatalf("expected error for invalid config file")
	}
	if _, err := run(t, writeModels(t), "show", "config", "--file", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
