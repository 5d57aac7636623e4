// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns discovered documents into searchable PDFs. Each
// format category has its own strategy; a bounded worker pool runs the
// independent tasks concurrently and the run continues past per-file
// failures.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/arturict/any2pdf/internal/cache"
	"github.com/arturict/any2pdf/internal/tools"
	"github.com/arturict/any2pdf/pkg/types"
)

// Runner executes an external conversion tool. Implemented by
// tools.Toolchain in production and by fakes in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Strategy converts one source file into the task's target PDF.
// Non-fatal notes (e.g. a skipped OCR pass) go to w.
type Strategy interface {
	Convert(ctx context.Context, task types.ConversionTask, w io.Writer) error
}

// Pipeline dispatches tasks to strategies and aggregates the run outcome.
type Pipeline struct {
	cfg        types.ConvertConfig
	cache      *cache.Cache // nil when caching is disabled
	strategies map[types.FormatCategory]Strategy
}

// New wires the format strategies against the detected toolchain. Strategies
// degrade individually: a missing OCR stack only drops the text layer, a
// missing office suite fails office tasks at conversion time.
func New(cfg types.ConvertConfig, tc *tools.Toolchain, c *cache.Cache) *Pipeline {
	if cfg.OfficeTimeout <= 0 {
		cfg.OfficeTimeout = 3 * time.Minute
	}
	if cfg.ToolTimeout <= 0 {
		cfg.ToolTimeout = time.Minute
	}

	var ocr *OCRPass
	if cfg.OCR && tc.HasOCR() {
		ocr = &OCRPass{run: tc, timeout: cfg.ToolTimeout}
	}

	return &Pipeline{
		cfg:   cfg,
		cache: c,
		strategies: map[types.FormatCategory]Strategy{
			types.FormatOffice: &OfficeStrategy{
				run:     tc,
				bin:     tc.OfficeBin(),
				timeout: cfg.OfficeTimeout,
				ocr:     ocr,
			},
			types.FormatImage: &ImageStrategy{
				run:     tc,
				ocr:     cfg.OCR && tc.HasTesseract(),
				timeout: cfg.ToolTimeout,
			},
			types.FormatText: TextStrategy{},
			types.FormatPDF:  &PDFStrategy{ocr: ocr},
		},
	}
}

// Result holds the aggregated outcome of a run.
type Result struct {
	Summary types.RunSummary

	// Produced lists the output PDFs of this run (fresh and cached),
	// sorted by path so downstream ordering is deterministic.
	Produced []string

	// Entries feed the run manifest.
	Entries []types.ManifestEntry
}

// taskOutcome pairs a result with the status lines its worker buffered.
// Workers log into private buffers so concurrent output never interleaves.
type taskOutcome struct {
	res types.ConversionResult
	log string
}

// Run converts all tasks using the configured number of workers, printing
// per-file status to w in completion order. Tasks are independent and
// write to distinct targets; the only shared state is the cache (serialized
// by database/sql) and the result channel.
func (p *Pipeline) Run(ctx context.Context, tasks []types.ConversionTask, w io.Writer) Result {
	start := time.Now()
	result := Result{Summary: types.RunSummary{Total: len(tasks)}}
	if len(tasks) == 0 {
		result.Summary.Elapsed = time.Since(start)
		return result
	}

	workers := p.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	jobs := make(chan types.ConversionTask)
	outcomes := make(chan taskOutcome, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				var buf bytes.Buffer
				res := p.convertOne(ctx, task, &buf)
				outcomes <- taskOutcome{res: res, log: buf.String()}
			}
		}()
	}

	go func() {
		for _, t := range tasks {
			jobs <- t
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	done := 0
	for out := range outcomes {
		done++
		task := out.res.Task
		fmt.Fprintf(w, "[%d/%d] %s\n", done, len(tasks), filepath.Base(task.Source))
		if out.log != "" {
			fmt.Fprint(w, out.log)
		}

		switch {
		case out.res.Err != nil:
			fmt.Fprintf(w, "  failed: %v\n", out.res.Err)
			result.Summary.Failed++
		case out.res.Cached:
			fmt.Fprintf(w, "  cached: %s\n", filepath.Base(task.Target))
			result.Summary.Converted++
			result.Summary.Cached++
			result.addSuccess(task, true)
		default:
			fmt.Fprintf(w, "  converted: %s\n", filepath.Base(task.Target))
			result.Summary.Converted++
			result.addSuccess(task, false)
		}
	}

	sort.Strings(result.Produced)
	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].Output < result.Entries[j].Output
	})

	result.Summary.Elapsed = time.Since(start)
	fmt.Fprintf(w, "\nRun summary: %d converted (%d from cache), %d failed (total: %d, %.1fs)\n",
		result.Summary.Converted, result.Summary.Cached, result.Summary.Failed,
		result.Summary.Total, result.Summary.Elapsed.Seconds())
	return result
}

func (r *Result) addSuccess(task types.ConversionTask, cached bool) {
	r.Produced = append(r.Produced, task.Target)
	r.Entries = append(r.Entries, types.ManifestEntry{
		Source: task.Source,
		Output: task.Target,
		Format: task.Format,
		Cached: cached,
	})
}

// convertOne runs a single task: cache probe, strategy dispatch, cache
// store. A cache hit substitutes the previously recorded target so a
// renamed plan never orphans the cached output.
func (p *Pipeline) convertOne(ctx context.Context, task types.ConversionTask, w io.Writer) types.ConversionResult {
	fingerprint := ""
	if p.cache != nil {
		fp, err := cache.Fingerprint(task.Source)
		if err == nil {
			fingerprint = fp
			if out, ok := p.cache.Lookup(task.Source, fp); ok {
				task.Target = out
				return types.ConversionResult{Task: task, Cached: true}
			}
		}
	}

	strategy, ok := p.strategies[task.Format]
	if !ok {
		return types.ConversionResult{
			Task: task,
			Err:  fmt.Errorf("no conversion strategy for format %q", task.Format),
		}
	}

	if err := strategy.Convert(ctx, task, w); err != nil {
		return types.ConversionResult{Task: task, Err: err}
	}

	if p.cache != nil && fingerprint != "" {
		if err := p.cache.Store(task.Source, fingerprint, task.Target); err != nil {
			fmt.Fprintf(w, "  warning: cache update failed: %v\n", err)
		}
	}

	return types.ConversionResult{Task: task}
}
