// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/arturict/any2pdf/pkg/types"
)

// ImageStrategy wraps a raster image in a one-page PDF. With OCR enabled
// the OCR engine renders the page itself and embeds the recognized text as
// an invisible layer; without it the image is imported as-is, so the output
// count never depends on the OCR setting.
type ImageStrategy struct {
	run     Runner
	ocr     bool
	timeout time.Duration
}

func (s *ImageStrategy) Convert(ctx context.Context, task types.ConversionTask, w io.Writer) error {
	if err := os.MkdirAll(filepath.Dir(task.Target), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if s.ocr {
		return s.convertOCR(ctx, task)
	}

	if err := api.ImportImagesFile([]string{task.Source}, task.Target, nil, nil); err != nil {
		return fmt.Errorf("importing %s: %w", filepath.Base(task.Source), err)
	}
	return nil
}

// convertOCR produces a searchable PDF directly via the OCR engine's pdf
// output mode. The engine appends .pdf to the output base itself.
func (s *ImageStrategy) convertOCR(ctx context.Context, task types.ConversionTask) error {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	outBase := strings.TrimSuffix(task.Target, ".pdf")
	if err := s.run.Run(runCtx, "tesseract", task.Source, outBase, "pdf"); err != nil {
		return fmt.Errorf("OCR on %s: %w", filepath.Base(task.Source), err)
	}
	if _, err := os.Stat(task.Target); err != nil {
		return fmt.Errorf("OCR engine produced no PDF for %s", filepath.Base(task.Source))
	}
	return nil
}
