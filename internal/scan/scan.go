// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan discovers convertible documents under a source directory
// and plans the conversion tasks for a run.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arturict/any2pdf/pkg/types"
)

// formatByExt maps a lower-case file extension to its conversion strategy.
var formatByExt = map[string]types.FormatCategory{
	".pptx": types.FormatOffice,
	".docx": types.FormatOffice,
	".doc":  types.FormatOffice,
	".ppt":  types.FormatOffice,
	".xlsx": types.FormatOffice,
	".xls":  types.FormatOffice,
	".odt":  types.FormatOffice,
	".odp":  types.FormatOffice,
	".ods":  types.FormatOffice,
	".rtf":  types.FormatOffice,

	".jpg":  types.FormatImage,
	".jpeg": types.FormatImage,
	".png":  types.FormatImage,
	".gif":  types.FormatImage,
	".bmp":  types.FormatImage,
	".tiff": types.FormatImage,
	".tif":  types.FormatImage,
	".webp": types.FormatImage,

	".txt":  types.FormatText,
	".md":   types.FormatText,
	".csv":  types.FormatText,
	".tsv":  types.FormatText,
	".log":  types.FormatText,
	".json": types.FormatText,
	".xml":  types.FormatText,
	".html": types.FormatText,
	".htm":  types.FormatText,

	".pdf": types.FormatPDF,
}

// FormatFor classifies a path by its extension.
func FormatFor(path string) types.FormatCategory {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatByExt[ext]; ok {
		return f
	}
	return types.FormatUnknown
}

// Supported reports whether the path has a convertible extension.
func Supported(path string) bool {
	return FormatFor(path) != types.FormatUnknown
}

// Files walks sourceDir and returns the sorted list of convertible files.
// The output directory, dot-directories and dotfiles are skipped so that a
// previous run's PDFs, cache database and manifest are never re-ingested.
func Files(sourceDir, outputDir string) ([]string, error) {
	src, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolving source directory: %w", err)
	}
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	var files []string
	walkErr := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path == out {
				return filepath.SkipDir
			}
			if path != src && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scanning %s: %w", sourceDir, walkErr)
	}

	sort.Strings(files)
	return files, nil
}

// Plan assigns an output PDF path to every discovered file. Output names
// flatten the path relative to sourceDir (separators become underscores);
// collisions are resolved with an incrementing counter so each source maps
// to exactly one distinct target.
func Plan(files []string, sourceDir, outputDir string) []types.ConversionTask {
	src, err := filepath.Abs(sourceDir)
	if err != nil {
		src = sourceDir
	}

	used := make(map[string]bool, len(files))
	tasks := make([]types.ConversionTask, 0, len(files))

	for _, f := range files {
		name := outputName(f, src)
		if used[name] {
			stem := strings.TrimSuffix(name, ".pdf")
			for counter := 1; ; counter++ {
				candidate := fmt.Sprintf("%s_%d.pdf", stem, counter)
				if !used[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true

		tasks = append(tasks, types.ConversionTask{
			Source: f,
			Target: filepath.Join(outputDir, name),
			Format: FormatFor(f),
		})
	}

	return tasks
}

// outputName derives the flattened PDF file name for a source path.
func outputName(path, sourceDir string) string {
	rel, err := filepath.Rel(sourceDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".pdf"
	rel = strings.ReplaceAll(rel, string(filepath.Separator), "_")
	return strings.TrimPrefix(rel, "._")
}
