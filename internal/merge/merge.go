// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge concatenates the produced PDFs into a single document.
package merge

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// OutputName is the file name of the merged document in the output directory.
const OutputName = "merged_all_documents.pdf"

// Merge concatenates pdfs into outPath in sorted-filename order. Worker
// completion order never reaches this function: the input is re-sorted
// here regardless of how it was produced. Files that fail validation are
// skipped with a warning so one corrupt PDF cannot sink the merge.
func Merge(pdfs []string, outPath string, w io.Writer) error {
	if len(pdfs) == 0 {
		return fmt.Errorf("nothing to merge")
	}

	ordered := make([]string, len(pdfs))
	copy(ordered, pdfs)
	sort.Strings(ordered)

	valid := ordered[:0]
	for _, p := range ordered {
		if err := api.ValidateFile(p, nil); err != nil {
			fmt.Fprintf(w, "warning: skipping %s from merge: %v\n", filepath.Base(p), err)
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return fmt.Errorf("no valid PDFs to merge")
	}

	if err := api.MergeCreateFile(valid, outPath, false, nil); err != nil {
		return fmt.Errorf("merging %d PDFs: %w", len(valid), err)
	}

	fmt.Fprintf(w, "merged %d documents into %s\n", len(valid), filepath.Base(outPath))
	return nil
}

// PageCount returns the number of pages in a PDF.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages in %s: %w", filepath.Base(path), err)
	}
	return n, nil
}
