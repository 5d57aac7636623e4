// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ocrDPI is the rasterization resolution for the OCR pass.
const ocrDPI = "300"

// OCRPass rebuilds a PDF with an embedded text layer: rasterize every page,
// OCR each page image into a one-page PDF, merge the pages back in order.
type OCRPass struct {
	run     Runner
	timeout time.Duration
}

// Apply replaces pdfPath with a searchable rendition. The original file is
// only overwritten after the full replacement has been assembled.
func (o *OCRPass) Apply(ctx context.Context, pdfPath string, w io.Writer) error {
	tmpDir, err := os.MkdirTemp("", "any2pdf-ocr-*")
	if err != nil {
		return fmt.Errorf("creating OCR scratch directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	if err := o.runTimed(ctx, "pdftoppm", "-r", ocrDPI, "-png", pdfPath, prefix); err != nil {
		return fmt.Errorf("rasterizing: %w", err)
	}

	pages, err := filepath.Glob(prefix + "-*.png")
	if err != nil || len(pages) == 0 {
		return fmt.Errorf("rasterizer produced no pages for %s", filepath.Base(pdfPath))
	}
	// pdftoppm zero-pads page numbers to a fixed width, so lexical order
	// is page order.
	sort.Strings(pages)

	pagePDFs := make([]string, 0, len(pages))
	for _, page := range pages {
		base := strings.TrimSuffix(page, ".png")
		if err := o.runTimed(ctx, "tesseract", page, base, "pdf"); err != nil {
			return fmt.Errorf("OCR on %s: %w", filepath.Base(page), err)
		}
		pagePDFs = append(pagePDFs, base+".pdf")
	}

	merged := filepath.Join(tmpDir, "searchable.pdf")
	if err := api.MergeCreateFile(pagePDFs, merged, false, nil); err != nil {
		return fmt.Errorf("reassembling pages: %w", err)
	}

	// The scratch dir may sit on another filesystem; copy instead of rename.
	if err := copyFile(merged, pdfPath); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(pdfPath), err)
	}

	fmt.Fprintf(w, "  ocr: embedded text layer (%d pages)\n", len(pagePDFs))
	return nil
}

func (o *OCRPass) runTimed(ctx context.Context, name string, args ...string) error {
	runCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return o.run.Run(runCtx, name, args...)
}
