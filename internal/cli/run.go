package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jwalton/gchalk"

	"github.com/fluxdoc/fluxdoc/internal/config"
	"github.com/fluxdoc/fluxdoc/pkg/errs"
	"github.com/fluxdoc/fluxdoc/pkg/output"
	"github.com/fluxdoc/fluxdoc/pkg/parallel"
	"github.com/fluxdoc/fluxdoc/pkg/pipeline"
)

// loadEffectiveConfig finds and loads .fluxdocrc (if any), merges it with
// the CLI-supplied flags, and validates the result, the same
// find-load-merge-validate sequence the teacher's RunCmd.Run runs before
// touching a single file.
func loadEffectiveConfig(cli *config.Config, files []string) (*config.Config, string, error) {
	root, found, err := config.FindProjectRoot()
	if err != nil {
		return nil, "", err
	}

	var fileCfg *config.Config
	if found {
		fileCfg, err = config.Load(root)
		if err != nil {
			return nil, "", fmt.Errorf("load config: %w", err)
		}
		fmt.Println(gchalk.Green("✓"), "loaded configuration from", filepath.Join(root, config.FileName))
	} else {
		fmt.Println(gchalk.Yellow("⚠"), "no", config.FileName, "found, using defaults and CLI flags")
	}

	cli.Files = files
	effective := config.Merge(fileCfg, cli)
	if err := effective.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid options: %w", err)
	}
	return effective, root, nil
}

func printEffectiveConfig(root string, cfg *config.Config, files []string) {
	fmt.Println()
	fmt.Println(gchalk.Bold("EFFECTIVE CONFIGURATION"))
	fmt.Printf("  Project root:  %s\n", root)
	fmt.Printf("  Output dir:    %s\n", cfg.OutDir)
	fmt.Printf("  Format:        %s\n", cfg.Format)
	fmt.Printf("  Strategy:      %s\n", cfg.Strategy)
	fmt.Printf("  Max chunk:     %d tokens\n", cfg.MaxChunkSize)
	fmt.Printf("  Overlap:       %d tokens\n", cfg.OverlapSize)
	fmt.Printf("  Tokenizer:     %s\n", cfg.Tokenizer)
	fmt.Printf("  Strict:        %t\n", cfg.Strict)
	fmt.Printf("\n  Files (%d total):\n", len(files))
	if len(files) == 0 {
		fmt.Println("    (none matched)")
	}
	for _, f := range files {
		fmt.Printf("    - %s\n", f)
	}
	fmt.Println()
}

// documentResult is one source file's outcome, threaded from
// processDocuments into each subcommand's own rendering.
type documentResult struct {
	sourceName string
	result     pipeline.Result
}

// processDocuments extracts every resolved file and runs the built
// pipeline's ProcessBatch over them, up to cfg.Parallelism documents at
// once (0 means runtime.NumCPU) with aggregate in-flight bytes bounded to
// cfg.MemoryBudgetMB, delegating the actual worker pool, byte-weighted
// semaphore, and retry loop to pkg/parallel instead of re-implementing
// them here. A document that still fails after pkg/parallel's retries
// aborts the whole batch, matching the teacher's RunCmd.Run, which stops
// on the first error.
func processDocuments(ctx context.Context, root string, cfg *config.Config, files []string) ([]documentResult, error) {
	p, err := buildPipeline(cfg)
	if err != nil {
		return nil, err
	}
	opts := cfg.ChunkingOptions()

	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	budget := cfg.MemoryBudgetMB * 1024 * 1024
	if budget <= 0 {
		budget = config.Default().MemoryBudgetMB * 1024 * 1024
	}

	jobs := make([]pipeline.BatchJob, len(files))
	for i, f := range files {
		absPath := filepath.Join(root, f)
		file, err := os.Open(absPath)
		if err != nil {
			return nil, errs.Wrap(errs.InputNotFound, fmt.Sprintf("open %s", f), err)
		}
		raw, err := p.Extract(ctx, file, f)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", f, err)
		}
		jobs[i] = pipeline.BatchJob{Name: f, Raw: raw}
	}

	parOpts := parallel.DefaultOptions(parallelism)
	parOpts.MemoryBudgetBytes = budget

	batchResults := p.ProcessBatch(ctx, jobs, opts, parOpts)

	results := make([]documentResult, len(batchResults))
	for i, br := range batchResults {
		if !br.Success {
			return nil, fmt.Errorf("process %s: %w", br.Name, br.Err)
		}
		results[i] = documentResult{sourceName: br.Name, result: br.Value}
	}
	return results, nil
}

func jumboWarning(res documentResult, cfg *config.Config) []string {
	limit := int(float64(cfg.MaxChunkSize) * 1.15)
	var warnings []string
	for _, c := range res.result.Chunks {
		if c.Tokens > limit {
			warnings = append(warnings, fmt.Sprintf("%s (sequence %d): %d tokens exceeds %d", res.sourceName, c.Sequence, c.Tokens, limit))
		}
	}
	return warnings
}

func documentMeta(res documentResult, cfg *config.Config) output.DocumentMeta {
	return output.DocumentMeta{
		SourceName: res.sourceName,
		Format:     res.result.Parsed.SourceFormat,
		Language:   res.result.Parsed.Language.Code,
		Strategy:   cfg.Strategy,
	}
}

func nowStamp() time.Time {
	return time.Now()
}
