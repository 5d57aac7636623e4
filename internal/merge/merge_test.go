// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
)

// writePDF creates a real one-page PDF with the given text.
func writePDF(t *testing.T, path, text string) {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 10, text)
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatal(err)
	}
}

func TestMerge_SortedOrder(t *testing.T) {
	dir := t.TempDir()
	// Deliberately created out of order; merge must re-sort by path.
	c := filepath.Join(dir, "c.pdf")
	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "b.pdf")
	writePDF(t, c, "page c")
	writePDF(t, a, "page a")
	writePDF(t, b, "page b")

	out := filepath.Join(dir, "merged.pdf")
	var log bytes.Buffer
	if err := Merge([]string{c, a, b}, out, &log); err != nil {
		t.Fatal(err)
	}

	n, err := PageCount(out)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("merged page count = %d, want 3", n)
	}
	if !strings.Contains(log.String(), "merged 3 documents") {
		t.Errorf("log = %q", log.String())
	}
}

func TestMerge_SkipsInvalidPDF(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.pdf")
	bad := filepath.Join(dir, "bad.pdf")
	writePDF(t, good, "fine")
	if err := os.WriteFile(bad, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "merged.pdf")
	var log bytes.Buffer
	if err := Merge([]string{good, bad}, out, &log); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(log.String(), "skipping bad.pdf") {
		t.Errorf("log missing skip warning: %q", log.String())
	}
	if n, err := PageCount(out); err != nil || n != 1 {
		t.Errorf("page count = %d, %v; want 1", n, err)
	}
}

func TestMerge_NothingValid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.pdf")
	if err := os.WriteFile(bad, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	if err := Merge([]string{bad}, filepath.Join(dir, "out.pdf"), &log); err == nil {
		t.Fatal("expected error when no input validates")
	}
}

func TestMerge_Empty(t *testing.T) {
	var log bytes.Buffer
	if err := Merge(nil, "out.pdf", &log); err == nil {
		t.Fatal("expected error for empty input")
	}
}
