// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/arturict/any2pdf/pkg/types"
)

// TextStrategy renders plain-text files (txt, md, csv, logs, markup) onto
// A4 pages. The text is already searchable, so no OCR pass applies.
type TextStrategy struct{}

func (TextStrategy) Convert(_ context.Context, task types.ConversionTask, _ io.Writer) error {
	data, err := os.ReadFile(task.Source)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(task.Source), err)
	}

	if err := os.MkdirAll(filepath.Dir(task.Target), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// Tolerate non-UTF-8 input rather than failing the file.
	text := strings.ToValidUTF8(string(data), "�")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()
	doc.SetFont("Courier", "", 10)

	// Core fonts are cp1252; translate what can be represented.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(text, "\n") {
		doc.MultiCell(0, 5, tr(line), "", "L", false)
	}

	if err := doc.OutputFileAndClose(task.Target); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(task.Target), err)
	}
	return nil
}
