// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FormatCategory classifies a source file by conversion strategy.
type FormatCategory string

const (
	FormatOffice  FormatCategory = "office"
	FormatImage   FormatCategory = "image"
	FormatText    FormatCategory = "text"
	FormatPDF     FormatCategory = "pdf"
	FormatUnknown FormatCategory = "unknown"
)

// ConversionTask pairs one source file with its assigned output PDF.
// Tasks are created at discovery time and consumed once by a worker.
type ConversionTask struct {
	// Source is the absolute path to the input document.
	Source string `json:"source" yaml:"source"`

	// Target is the absolute path of the PDF this task produces.
	// Targets are unique within a run; name collisions are resolved
	// with an incrementing suffix at planning time.
	Target string `json:"target" yaml:"target"`

	// Format selects the conversion strategy.
	Format FormatCategory `json:"format" yaml:"format"`
}

// ConversionResult is the outcome of one task.
type ConversionResult struct {
	Task   ConversionTask
	Cached bool
	Err    error
}

// RunSummary aggregates per-file outcomes of a conversion run.
type RunSummary struct {
	Total     int           `json:"total" yaml:"total"`
	Converted int           `json:"converted" yaml:"converted"`
	Cached    int           `json:"cached" yaml:"cached"`
	Failed    int           `json:"failed" yaml:"failed"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
}

// HasFailures reports whether any file failed to convert.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0
}

// ManifestEntry records one produced PDF in the run manifest.
type ManifestEntry struct {
	Source string         `json:"source" yaml:"source"`
	Output string         `json:"output" yaml:"output"`
	Format FormatCategory `json:"format" yaml:"format"`
	Cached bool           `json:"cached" yaml:"cached"`
}

// Manifest is the YAML record written to the output directory after a run.
type Manifest struct {
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	SourceDir   string          `json:"source_dir" yaml:"source_dir"`
	Summary     RunSummary      `json:"summary" yaml:"summary"`
	Documents   []ManifestEntry `json:"documents" yaml:"documents"`
}
