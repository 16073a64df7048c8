// Package cli implements fluxdoc's command-line surface: a Kong-parsed
// CLI struct with process, chunk, and init subcommands, generalizing the
// teacher's internal/cli from a single chunker-only RunCmd into this
// module's directory-output-vs-stdout split (spec.md §6's resolved Open
// Question).
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jwalton/gchalk"

	"github.com/fluxdoc/fluxdoc/internal/config"
	"github.com/fluxdoc/fluxdoc/pkg/output"
)

// CLI is the top-level Kong command structure.
type CLI struct {
	Process ProcessCmd `cmd:"" help:"Chunk files and write one output file per chunk plus info.json into a directory"`
	Chunk   ChunkCmd   `cmd:"" help:"Chunk files and print the result to stdout"`
	Init    InitCmd    `cmd:"" help:"Create a .fluxdocrc configuration file"`
}

// flagOptions is the subset of config.Config exposed as CLI flags,
// embedded by each subcommand the same way the teacher embeds
// ChunkyOptions into both RunCmd and InitCmd.
type flagOptions struct {
	config.Config
}

func (f *flagOptions) toConfig() *config.Config {
	c := f.Config
	return &c
}

// ProcessCmd runs the pipeline over every matched file and writes
// per-chunk files plus an info.json digest into OutDir.
type ProcessCmd struct {
	flagOptions

	Files []string `arg:"" optional:"" help:"File globs to process"`
}

func (r *ProcessCmd) Run() error {
	cfg, root, err := loadEffectiveConfig(r.toConfig(), r.Files)
	if err != nil {
		return err
	}

	files, err := ExpandGlobs(root, cfg.Files)
	if err != nil {
		return fmt.Errorf("expand globs: %w", err)
	}

	if cfg.Verbose {
		printEffectiveConfig(root, cfg, files)
	}

	_, chunkSer, format, err := serializerFor(cfg.Format)
	if err != nil {
		return err
	}

	results, err := processDocuments(context.Background(), root, cfg, files)
	if err != nil {
		return err
	}

	var totalWritten int
	for _, res := range results {
		meta := documentMeta(res, cfg)

		if warnings := jumboWarning(res, cfg); len(warnings) > 0 {
			for _, w := range warnings {
				fmt.Println(gchalk.Yellow("⚠"), w)
			}
			if cfg.Strict {
				return fmt.Errorf("strict mode: %d oversized chunk(s) in %s", len(warnings), res.sourceName)
			}
		}

		if cfg.DryRun {
			fmt.Println(gchalk.Dim(fmt.Sprintf("dry run: %s would produce %d chunk(s)", res.sourceName, len(res.result.Chunks))))
			continue
		}

		written, err := output.WriteChunks(cfg.OutDir, meta, res.result.Chunks, format, chunkSer)
		if err != nil {
			return fmt.Errorf("write chunks for %s: %w", res.sourceName, err)
		}
		totalWritten += len(written)

		info := output.Info{
			SourceName:   res.sourceName,
			Format:       meta.Format,
			Strategy:     meta.Strategy,
			OutputFormat: string(format),
			Options:      cfg.ChunkingOptions(),
			ProcessedAt:  nowStamp(),
			Enriched:     cfg.EnableEnrichment,
			Summary:      output.Summarize(res.result.Chunks, res.result.Enriched.EnrichedCount, res.result.Images.Extracted, res.result.Images.Skipped),
		}
		if err := output.WriteInfo(cfg.OutDir, info); err != nil {
			return fmt.Errorf("write info.json for %s: %w", res.sourceName, err)
		}
	}

	fmt.Println(gchalk.Green("✓"), fmt.Sprintf("wrote %d chunk file(s) across %d document(s) to %s", totalWritten, len(results), cfg.OutDir))
	return nil
}

// ChunkCmd runs the identical pipeline but prints the whole serialized
// result to stdout per document instead of writing files, sharing 100%
// of processDocuments with ProcessCmd.
type ChunkCmd struct {
	flagOptions

	Files []string `arg:"" optional:"" help:"File globs to process"`
}

func (r *ChunkCmd) Run() error {
	cfg, root, err := loadEffectiveConfig(r.toConfig(), r.Files)
	if err != nil {
		return err
	}

	files, err := ExpandGlobs(root, cfg.Files)
	if err != nil {
		return fmt.Errorf("expand globs: %w", err)
	}

	if cfg.Verbose {
		printEffectiveConfig(root, cfg, files)
	}

	ser, _, _, err := serializerFor(cfg.Format)
	if err != nil {
		return err
	}

	results, err := processDocuments(context.Background(), root, cfg, files)
	if err != nil {
		return err
	}

	for _, res := range results {
		if warnings := jumboWarning(res, cfg); len(warnings) > 0 {
			for _, w := range warnings {
				fmt.Fprintln(os.Stderr, gchalk.Yellow("⚠"), w)
			}
			if cfg.Strict {
				return fmt.Errorf("strict mode: %d oversized chunk(s) in %s", len(warnings), res.sourceName)
			}
		}

		meta := documentMeta(res, cfg)
		data, err := ser(meta, res.result.Chunks)
		if err != nil {
			return fmt.Errorf("serialize %s: %w", res.sourceName, err)
		}

		fmt.Println(gchalk.Bold(strings.Repeat("=", 60)))
		fmt.Println(gchalk.Bold(res.sourceName), gchalk.Dim(fmt.Sprintf("(%d chunks)", len(res.result.Chunks))))
		fmt.Println(gchalk.Bold(strings.Repeat("=", 60)))
		fmt.Println(string(data))
	}
	return nil
}

// InitCmd writes a .fluxdocrc populated from the current flags and
// matched file globs, the same role the teacher's InitCmd plays for
// .chunkyrc.
type InitCmd struct {
	flagOptions

	Files []string `arg:"" optional:"" help:"File globs to record in the config"`
	Force bool     `help:"Overwrite an existing .fluxdocrc" short:"f"`
}

func (i *InitCmd) Run() error {
	root, found, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	if found && !i.Force {
		return fmt.Errorf("config file already exists under %s (use --force to overwrite)", root)
	}

	cfg := i.toConfig()
	cfg.Files = i.Files
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if err := config.Save(root, cfg); err != nil {
		return err
	}
	fmt.Println(gchalk.Green("✓"), "created", config.FileName, "in", root)
	return nil
}
