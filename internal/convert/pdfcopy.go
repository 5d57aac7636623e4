// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arturict/any2pdf/pkg/types"
)

// PDFStrategy copies an existing PDF into the output set, applying the OCR
// pass when one is configured. A failed OCR pass leaves the plain copy in
// place; only the copy itself can fail the task.
type PDFStrategy struct {
	ocr *OCRPass
}

func (s *PDFStrategy) Convert(ctx context.Context, task types.ConversionTask, w io.Writer) error {
	if err := os.MkdirAll(filepath.Dir(task.Target), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := copyFile(task.Source, task.Target); err != nil {
		return fmt.Errorf("copying %s: %w", filepath.Base(task.Source), err)
	}

	if s.ocr != nil {
		if err := s.ocr.Apply(ctx, task.Target, w); err != nil {
			fmt.Fprintf(w, "  warning: OCR pass skipped: %v\n", err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
