// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/arturict/any2pdf/internal/cache"
	"github.com/arturict/any2pdf/internal/convert"
	"github.com/arturict/any2pdf/internal/merge"
	"github.com/arturict/any2pdf/internal/scan"
	"github.com/arturict/any2pdf/internal/tools"
	"github.com/arturict/any2pdf/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert SOURCE_DIR",
	Short: "Convert all documents under a directory to searchable PDFs",
	Long: `Convert walks SOURCE_DIR, converts every supported document to PDF and
writes the results to the output directory (default: SOURCE_DIR/converted_pdfs).

Office documents render through the office suite, images through the OCR
engine or a direct PDF import, text files through the built-in renderer,
and existing PDFs are copied. With OCR enabled a searchable text layer is
embedded where the tools allow it. A failing file is reported and skipped;
the rest of the run continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output directory (default: SOURCE_DIR/converted_pdfs)")
	convertCmd.Flags().Bool("no-ocr", false, "skip the searchable text layer (faster)")
	convertCmd.Flags().BoolP("merge", "m", false, "merge all produced PDFs into one document")
	convertCmd.Flags().IntP("jobs", "j", defaultWorkers(), "number of parallel conversion workers")
	convertCmd.Flags().Bool("no-cache", false, "always reconvert, ignoring the conversion cache")
	convertCmd.Flags().Bool("chat", false, "open a chat session on the merged PDF (implies --merge)")

	rootCmd.AddCommand(convertCmd)
}

// defaultWorkers caps the pool at 4: each worker drives a heavyweight
// external process, more brings contention instead of throughput.
func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	return n
}

func runConvert(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	sourceDir := args[0]
	info, err := os.Stat(sourceDir)
	if err != nil {
		return fmt.Errorf("source directory %s: %w", sourceDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", sourceDir)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = filepath.Join(sourceDir, "converted_pdfs")
	}
	noOCR, _ := cmd.Flags().GetBool("no-ocr")
	doMerge, _ := cmd.Flags().GetBool("merge")
	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	doChat, _ := cmd.Flags().GetBool("chat")
	if doChat {
		doMerge = true
	}

	tc := tools.Detect()
	tc.Print(w)

	files, err := scan.Files(sourceDir, outputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No convertible files found.")
		return nil
	}
	fmt.Fprintf(w, "Found %d file(s) to convert.\n\n", len(files))

	// A missing office suite is fatal only when office files are present;
	// missing OCR tools just drop the text layer.
	tasks := scan.Plan(files, sourceDir, outputDir)
	for _, t := range tasks {
		if t.Format == types.FormatOffice && !tc.HasOffice() {
			return fmt.Errorf("office documents found but no office suite is installed (see any2pdf deps)")
		}
	}
	if !noOCR && !tc.HasOCR() {
		fmt.Fprintln(w, "note: OCR tools incomplete, PDFs will be produced without a text layer")
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var c *cache.Cache
	if !noCache {
		c, err = cache.Open(outputDir)
		if err != nil {
			return err
		}
		defer c.Close()
	}

	cfg := types.ConvertConfig{
		SourceDir: sourceDir,
		OutputDir: outputDir,
		OCR:       !noOCR,
		Merge:     doMerge,
		Workers:   jobs,
		Cache:     !noCache,
	}

	result := convert.New(cfg, tc, c).Run(cmd.Context(), tasks, w)
	if result.Summary.HasFailures() {
		fmt.Fprintln(w, "Some files failed to convert; see the lines above.")
	}

	if len(result.Entries) > 0 {
		if err := convert.WriteManifest(outputDir, sourceDir, result); err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
		}
	}

	if doMerge && len(result.Produced) > 0 {
		mergedPath := filepath.Join(outputDir, merge.OutputName)
		if err := merge.Merge(result.Produced, mergedPath, w); err != nil {
			fmt.Fprintf(w, "merge failed: %v (individual PDFs remain in %s)\n", err, outputDir)
		} else if doChat {
			cfg := resolveChatConfig("", "", "")
			if err := startChat(cmd, mergedPath, cfg); err != nil {
				fmt.Fprintf(w, "chat session failed: %v\n", err)
			}
		}
	}

	// Per-file failures are reported in the summary, not via the exit code.
	return nil
}
