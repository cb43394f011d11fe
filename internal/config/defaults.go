package config

import "github.com/hyperjump/doctext/internal/models"

// DefaultBaseDir is the directory holding the source files and receiving the extracted text.
const DefaultBaseDir = `C:\Users\Sheikh PC\StudioProjects\untitled3\deveopment_R`

// DefaultJobs returns the two built-in extraction jobs, relative to the base directory.
func DefaultJobs() []models.Job {
	return []models.Job{
		{
			Input:   "nijib BRD.docx",
			Output:  "BRD_extracted.txt",
			Kind:    models.KindDocument,
			Message: "Extracted BRD text.",
		},
		{
			Input:   "Aditi-8 week workout plan MASTER.xlsx",
			Output:  "workout_plan_extracted.txt",
			Kind:    models.KindWorkbook,
			Message: "Extracted workout plan text.",
		},
	}
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.BaseDir == "" {
		cfg.BaseDir = DefaultBaseDir
	}
	if len(cfg.Jobs) == 0 {
		cfg.Jobs = DefaultJobs()
	}
}
