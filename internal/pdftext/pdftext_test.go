// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
)

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 10, "quarterly revenue grew by twelve percent")
	doc.AddPage()
	doc.Cell(0, 10, "second page content")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatal(err)
	}

	text, err := Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "quarterly revenue") {
		t.Errorf("extracted text missing first page: %q", text)
	}
	if !strings.Contains(text, "second page content") {
		t.Errorf("extracted text missing second page: %q", text)
	}
}

func TestExtract_NotAPDF(t *testing.T) {
	if _, err := Extract(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, "hello"},
		{"héllo", 2, "hé"}, // rune boundary, not byte boundary
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
