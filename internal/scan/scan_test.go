// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arturict/any2pdf/pkg/types"
)

// writeFiles creates empty files under dir, making parent directories as needed.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		path := filepath.Join(dir, filepath.FromSlash(n))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want types.FormatCategory
	}{
		{"slides.pptx", types.FormatOffice},
		{"Report.DOCX", types.FormatOffice},
		{"sheet.ods", types.FormatOffice},
		{"photo.JPG", types.FormatImage},
		{"scan.tiff", types.FormatImage},
		{"notes.md", types.FormatText},
		{"data.csv", types.FormatText},
		{"paper.pdf", types.FormatPDF},
		{"archive.zip", types.FormatUnknown},
		{"noext", types.FormatUnknown},
	}
	for _, tt := range tests {
		if got := FormatFor(tt.path); got != tt.want {
			t.Errorf("FormatFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFiles(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(src, "converted_pdfs")

	writeFiles(t, src,
		"b.docx",
		"a.txt",
		"sub/deck.pptx",
		"sub/photo.png",
		"ignored.zip",
		".hidden.txt",
		".git/config.txt",
		"converted_pdfs/old.pdf",
	)

	files, err := Files(src, out)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(src, "a.txt"),
		filepath.Join(src, "b.docx"),
		filepath.Join(src, "sub", "deck.pptx"),
		filepath.Join(src, "sub", "photo.png"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %d files %v, want %d", len(files), files, len(want))
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestFiles_MissingSource(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing source directory")
	}
}

func TestPlan_FlattensAndClassifies(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(src, "out")
	writeFiles(t, src, "sub/deck.pptx")

	tasks := Plan([]string{filepath.Join(src, "sub", "deck.pptx")}, src, out)
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if got, want := tasks[0].Target, filepath.Join(out, "sub_deck.pdf"); got != want {
		t.Errorf("target = %q, want %q", got, want)
	}
	if tasks[0].Format != types.FormatOffice {
		t.Errorf("format = %q, want %q", tasks[0].Format, types.FormatOffice)
	}
}

func TestPlan_CollisionCounter(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(src, "out")

	// a/report.docx and a_report.txt both flatten to a_report.pdf.
	files := []string{
		filepath.Join(src, "a", "report.docx"),
		filepath.Join(src, "a_report.txt"),
	}

	tasks := Plan(files, src, out)
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	seen := map[string]bool{}
	for _, task := range tasks {
		if seen[task.Target] {
			t.Fatalf("duplicate target %q", task.Target)
		}
		seen[task.Target] = true
	}
	if !seen[filepath.Join(out, "a_report.pdf")] || !seen[filepath.Join(out, "a_report_1.pdf")] {
		t.Errorf("unexpected targets: %v", seen)
	}
}
