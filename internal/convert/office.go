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

	"github.com/arturict/any2pdf/pkg/types"
)

// OfficeStrategy renders office documents to PDF through the office suite's
// headless converter.
type OfficeStrategy struct {
	run     Runner
	bin     string
	timeout time.Duration
	ocr     *OCRPass
}

// Convert shells out to the office suite. The suite always writes
// <stem>.pdf into its --outdir, so each task converts into a private temp
// directory and the produced file is renamed to the assigned target;
// concurrent tasks with identical stems cannot clobber each other that way.
func (s *OfficeStrategy) Convert(ctx context.Context, task types.ConversionTask, w io.Writer) error {
	base := filepath.Base(task.Source)
	if s.bin == "" {
		return fmt.Errorf("no office suite installed, cannot convert %s", base)
	}

	outDir := filepath.Dir(task.Target)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// Temp dir on the same filesystem as the target so the rename is atomic.
	tmpDir, err := os.MkdirTemp(outDir, ".office-*")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	runErr := s.run.Run(runCtx, s.bin,
		"--headless", "--convert-to", "pdf", "--outdir", tmpDir, task.Source)

	// The suite can exit 0 without producing output; the produced file is
	// the source of truth, not the exit code.
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	produced := filepath.Join(tmpDir, stem+".pdf")
	if _, err := os.Stat(produced); err != nil {
		if runErr != nil {
			return fmt.Errorf("converting %s: %w", base, runErr)
		}
		return fmt.Errorf("office suite produced no PDF for %s", base)
	}

	if err := os.Rename(produced, task.Target); err != nil {
		return fmt.Errorf("moving %s into place: %w", filepath.Base(task.Target), err)
	}

	if s.ocr != nil {
		if err := s.ocr.Apply(ctx, task.Target, w); err != nil {
			fmt.Fprintf(w, "  warning: OCR pass skipped: %v\n", err)
		}
	}
	return nil
}
