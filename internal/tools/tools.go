// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tools detects and executes the external converters the pipeline
// shells out to: an office suite for document rendering, tesseract for OCR
// and pdftoppm for PDF rasterization.
package tools

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binSoffice     = "soffice"
	binLibreOffice = "libreoffice"
	binTesseract   = "tesseract"
	binPdftoppm    = "pdftoppm"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunContext(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunContext(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

var defaultExec executor = &osExecutor{}

// Toolchain records which external converters are available on this host.
// Build one with Detect at startup and share it across workers; it is
// immutable after construction.
type Toolchain struct {
	office    string
	tesseract bool
	pdftoppm  bool
	exec      executor
}

// Detect probes the host for the external tools the pipeline can use.
// A missing tool is not an error here; callers decide which absences are
// fatal for the files they have to convert.
func Detect() *Toolchain {
	return detect(defaultExec)
}

func detect(exec executor) *Toolchain {
	t := &Toolchain{exec: exec}

	// The office suite ships as soffice on most installs; older Linux
	// packages expose only the libreoffice wrapper.
	for _, bin := range []string{binSoffice, binLibreOffice} {
		if available(exec, bin, "--version") {
			t.office = bin
			break
		}
	}

	t.tesseract = available(exec, binTesseract, "--version")
	t.pdftoppm = available(exec, binPdftoppm, "-v")

	return t
}

// available reports whether bin exists on PATH and answers its version probe.
func available(exec executor, bin string, probe ...string) bool {
	if _, err := exec.LookPath(bin); err != nil {
		return false
	}
	return exec.RunSilent(bin, probe...) == nil
}

// OfficeBin returns the resolved office binary name, or "" when absent.
func (t *Toolchain) OfficeBin() string { return t.office }

// HasOffice reports whether an office suite is available.
func (t *Toolchain) HasOffice() bool { return t.office != "" }

// HasTesseract reports whether the OCR engine is available.
func (t *Toolchain) HasTesseract() bool { return t.tesseract }

// HasOCR reports whether PDFs can be OCR'd: that needs both the OCR engine
// and the rasterizer. Image OCR needs only tesseract.
func (t *Toolchain) HasOCR() bool { return t.tesseract && t.pdftoppm }

// Run executes an external tool, bounded by ctx. On failure the tool's
// combined output is attached to the returned error so per-file failures
// surface the tool's own message.
func (t *Toolchain) Run(ctx context.Context, name string, args ...string) error {
	out, err := t.exec.RunContext(ctx, name, args...)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %w: %s", name, err, truncate(msg, 400))
	}
	return nil
}

// Print writes a dependency status table.
func (t *Toolchain) Print(w io.Writer) {
	fmt.Fprintln(w, "Dependency check:")
	rows := []struct {
		name      string
		available bool
		role      string
	}{
		{"office suite (soffice)", t.HasOffice(), "required for office documents"},
		{"tesseract", t.tesseract, "optional, searchable text layer"},
		{"pdftoppm", t.pdftoppm, "optional, PDF rasterization for OCR"},
	}
	for _, r := range rows {
		status := "not found"
		if r.available {
			status = "installed"
		}
		fmt.Fprintf(w, "  %-24s %-10s (%s)\n", r.name, status, r.role)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
