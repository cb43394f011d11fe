package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/doctext/internal/config"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestLoadConfig_defaultsWhenNoFile(t *testing.T) {
	cfg, path, err := loadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty for built-in defaults", path)
	}
	if len(cfg.Jobs) != 2 {
		t.Errorf("jobs = %d, want 2", len(cfg.Jobs))
	}
	if cfg.BaseDir != config.DefaultBaseDir {
		t.Errorf("base dir = %s", cfg.BaseDir)
	}
}

func TestLoadConfig_fileInDir(t *testing.T) {
	dir := t.TempDir()
	content := "debug: true\nbase_dir: \"" + dir + "\"\n"
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, path, err := loadConfig(dir)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if path != filepath.Join(dir, config.FileName) {
		t.Errorf("path = %q", path)
	}
	if !cfg.Debug {
		t.Error("debug should be read from the file")
	}
}

func TestRun_workbookOnly(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{BaseDir: dir}
	config.ApplyDefaults(cfg)
	for i := range cfg.Jobs {
		cfg.Jobs[i].Input = filepath.Join(dir, cfg.Jobs[i].Input)
		cfg.Jobs[i].Output = filepath.Join(dir, cfg.Jobs[i].Output)
	}

	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "Week")
	f.SetCellValue("Sheet1", "B1", 1)
	if err := f.SaveAs(cfg.Jobs[1].Input); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	var out bytes.Buffer
	n, err := run(context.Background(), cfg, zap.NewNop(), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 1 {
		t.Errorf("processed = %d, want 1", n)
	}
	if got := out.String(); got != "Extracted workout plan text.\n" {
		t.Errorf("stdout = %q", got)
	}
	b, err := os.ReadFile(filepath.Join(dir, "workout_plan_extracted.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(b); got != "--- Sheet: Sheet1 ---\nWeek\t1" {
		t.Errorf("output = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "BRD_extracted.txt")); !os.IsNotExist(err) {
		t.Error("document output should not be created when its input is missing")
	}
}
