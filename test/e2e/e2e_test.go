package e2e

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/doctext/internal/config"
	"github.com/hyperjump/doctext/internal/extract"
	"github.com/hyperjump/doctext/internal/runner"
)

const e2eConfig = `
base_dir: "%s"
jobs:
  - input: "nijib BRD.docx"
    output: "BRD_extracted.txt"
    message: "Extracted BRD text."
  - input: "Aditi-8 week workout plan MASTER.xlsx"
    output: "workout_plan_extracted.txt"
    message: "Extracted workout plan text."
`

// setup writes a config for dir and returns the loaded jobs' config.
func setup(t *testing.T, dir string) *config.Config {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(strings.Replace(e2eConfig, "%s", dir, 1)), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func runOnce(t *testing.T, cfg *config.Config) string {
	t.Helper()
	var out bytes.Buffer
	r := runner.NewRunner(extract.NewExtractor(), runner.WithStdout(&out))
	if _, err := r.Run(context.Background(), cfg.Jobs); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestE2E_ExtractsBothFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := setup(t, dir)

	paragraphs := []string{"Business Requirements", "", "1. Scope & goals", "\tIndented <item>"}
	if err := os.WriteFile(filepath.Join(dir, "nijib BRD.docx"), MinimalDocx(paragraphs...), 0600); err != nil {
		t.Fatal(err)
	}
	xlsx, err := MinimalXlsx(
		SheetFixture{Name: "Week 1", Cells: map[string]interface{}{
			"A1": "Exercise", "B1": "Sets", "C1": "Reps",
			"A2": "Squat", "B2": 3, "C2": 10,
			"A3": "Plank", "C3": 0.5,
		}},
		SheetFixture{Name: "Week 2", Cells: map[string]interface{}{"A1": "Deload"}},
	)
	if err != nil {
		t.Fatalf("MinimalXlsx: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Aditi-8 week workout plan MASTER.xlsx"), xlsx, 0600); err != nil {
		t.Fatal(err)
	}

	stdout := runOnce(t, cfg)
	if stdout != "Extracted BRD text.\nExtracted workout plan text.\n" {
		t.Errorf("stdout = %q", stdout)
	}

	doc, err := os.ReadFile(filepath.Join(dir, "BRD_extracted.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(doc), strings.Join(paragraphs, "\n"); got != want {
		t.Errorf("document output = %q, want %q", got, want)
	}

	wb, err := os.ReadFile(filepath.Join(dir, "workout_plan_extracted.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"--- Sheet: Week 1 ---",
		"Exercise\tSets\tReps",
		"Squat\t3\t10",
		"Plank\t\t0.5",
		"--- Sheet: Week 2 ---",
		"Deload",
	}, "\n")
	if got := string(wb); got != want {
		t.Errorf("workbook output = %q, want %q", got, want)
	}
	if strings.Contains(string(wb), "None") || strings.Contains(string(wb), "<nil>") {
		t.Error("empty cells must render as empty strings")
	}
}

func TestE2E_RunTwiceIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	cfg := setup(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "nijib BRD.docx"), MinimalDocx("a", "b"), 0600); err != nil {
		t.Fatal(err)
	}
	xlsx, err := MinimalXlsx(SheetFixture{Name: "Plan", Cells: map[string]interface{}{"A1": 1.25, "B3": "x"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Aditi-8 week workout plan MASTER.xlsx"), xlsx, 0600); err != nil {
		t.Fatal(err)
	}

	runOnce(t, cfg)
	first := map[string][]byte{}
	for _, j := range cfg.Jobs {
		b, err := os.ReadFile(j.Output)
		if err != nil {
			t.Fatal(err)
		}
		first[j.Output] = b
	}
	runOnce(t, cfg)
	for _, j := range cfg.Jobs {
		b, err := os.ReadFile(j.Output)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(b, first[j.Output]) {
			t.Errorf("%s changed between runs", j.Output)
		}
	}
}

func TestE2E_NeitherInputPresent(t *testing.T) {
	dir := t.TempDir()
	cfg := setup(t, dir)
	if stdout := runOnce(t, cfg); stdout != "" {
		t.Errorf("stdout = %q, want nothing", stdout)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != config.FileName {
		t.Errorf("no outputs expected, dir holds %v", entries)
	}
}
