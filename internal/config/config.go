// Package config implements fluxdoc's project configuration file,
// .fluxdocrc: finding it by walking up from the working directory,
// loading and saving it as YAML, and merging it with CLI flags. It
// mirrors the teacher's .chunkyrc machinery (cmd/chunky/config.go),
// generalized from a chunker-only option set to the full chunking,
// cache, and parallel-run knobs this module's surface exposes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
)

// FileName is the project configuration file's name, fluxdoc's
// equivalent of the teacher's ".chunkyrc".
const FileName = ".fluxdocrc"

// Config is the unified configuration surface for both CLI flags and
// .fluxdocrc: one struct with both yaml and kong tags, the same dual-use
// shape the teacher's ChunkyOptions uses.
type Config struct {
	OutDir            string   `yaml:"outDir" help:"Output directory for chunks" short:"o" default:"."`
	Format            string   `yaml:"format" help:"Output format: json, jsonl, markdown" short:"f" default:"json"`
	Strategy          string   `yaml:"strategy" help:"Chunking strategy: auto, fixedsize, paragraph, semantic, intelligent, smart, hierarchical, memory_optimized_intelligent" short:"s" default:"auto"`
	MaxChunkSize      int      `yaml:"maxChunkSize" help:"Maximum tokens per chunk" short:"m" default:"500"`
	OverlapSize       int      `yaml:"overlapSize" help:"Overlap between adjacent chunks, in tokens" default:"75"`
	PreserveStructure bool     `yaml:"preserveStructure" help:"Prefer splitting at structural boundaries" default:"true"`
	EnableEnrichment  bool     `yaml:"enableEnrichment" help:"Run LLM enrichment when a provider is configured"`
	Tokenizer         string   `yaml:"tokenizer" help:"Tokenizer: o200k_base, cl100k_base, char, word" default:"o200k_base"`
	Strict            bool     `yaml:"strict" help:"Fail instead of warning on a chunking invariant violation"`
	Verbose           bool     `yaml:"verbose" help:"Print effective configuration before processing" short:"v"`
	DryRun            bool     `yaml:"dryRun" help:"Chunk without writing output files" short:"d"`
	CacheEnabled      bool     `yaml:"cacheEnabled" help:"Memoize chunk lists by content+options fingerprint" default:"true"`
	CacheMaxEntries   int      `yaml:"cacheMaxEntries" help:"Maximum cached documents" default:"1000"`
	Parallelism       int      `yaml:"parallelism" help:"Concurrent documents in a batch run, 0 = CPU count" short:"p"`
	MemoryBudgetMB    int64    `yaml:"memoryBudgetMB" help:"Aggregate in-flight byte budget for a batch run, in MB" default:"512"`
	Files             []string `yaml:"files,omitempty" json:"-" kong:"-"`
}

// Default returns the same defaults the `default:` struct tags above
// declare for Kong, kept here so Merge has something concrete to
// compare CLI values against.
func Default() Config {
	return Config{
		OutDir:            ".",
		Format:            "json",
		Strategy:          "auto",
		MaxChunkSize:      500,
		OverlapSize:       75,
		PreserveStructure: true,
		Tokenizer:         "o200k_base",
		CacheEnabled:      true,
		CacheMaxEntries:   1000,
		MemoryBudgetMB:    512,
	}
}

// Validate rejects an internally inconsistent configuration before it
// reaches the pipeline.
func (c *Config) Validate() error {
	if c.MaxChunkSize < 50 {
		return fmt.Errorf("maxChunkSize must be at least 50, got %d", c.MaxChunkSize)
	}
	if c.OverlapSize < 0 || c.OverlapSize >= c.MaxChunkSize {
		return fmt.Errorf("overlapSize must be in [0, maxChunkSize), got %d with maxChunkSize %d", c.OverlapSize, c.MaxChunkSize)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must be >= 0, got %d", c.Parallelism)
	}
	switch c.Format {
	case "json", "jsonl", "markdown":
	default:
		return fmt.Errorf("format must be one of json, jsonl, markdown, got %q", c.Format)
	}
	return nil
}

// ChunkingOptions projects the chunking-relevant fields onto
// docmodel.ChunkingOptions for a pipeline call.
func (c *Config) ChunkingOptions() docmodel.ChunkingOptions {
	opts := docmodel.DefaultChunkingOptions()
	opts.StrategyName = c.Strategy
	opts.MaxChunkSize = c.MaxChunkSize
	opts.OverlapSize = c.OverlapSize
	opts.PreserveStructure = c.PreserveStructure
	opts.EnableEnrichment = c.EnableEnrichment
	return opts
}

// FindProjectRoot walks up from the current directory looking for
// .fluxdocrc, the same upward search the teacher's FindProjectRoot runs
// for .chunkyrc. Returns the current directory and false if none is
// found anywhere above it.
func FindProjectRoot() (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get current directory: %w", err)
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, false, nil
		}
		dir = parent
	}
}

// Load reads .fluxdocrc from projectRoot. Returns nil, nil if the file
// does not exist.
func Load(projectRoot string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(projectRoot, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to .fluxdocrc in projectRoot as YAML, with a short
// comment header.
func Save(projectRoot string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	header := "# fluxdoc project configuration\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(filepath.Join(projectRoot, FileName), data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Merge combines a loaded file config with CLI flags, CLI taking
// precedence field by field. A CLI value is considered "set" when it
// differs from Default()'s value for that field, the same
// sentinel-comparison approach the teacher's MergeOptions uses; Files is
// the union of both lists rather than an override.
func Merge(file, cli *Config) *Config {
	def := Default()
	if file == nil {
		file = &Config{}
	}
	if cli == nil {
		cli = &Config{}
	}

	result := *def.clone()

	pick := func(cliVal, fileVal, defVal string) string {
		if cliVal != defVal && cliVal != "" {
			return cliVal
		}
		if fileVal != "" {
			return fileVal
		}
		return defVal
	}

	result.OutDir = pick(cli.OutDir, file.OutDir, def.OutDir)
	result.Format = pick(cli.Format, file.Format, def.Format)
	result.Strategy = pick(cli.Strategy, file.Strategy, def.Strategy)
	result.Tokenizer = pick(cli.Tokenizer, file.Tokenizer, def.Tokenizer)

	result.MaxChunkSize = pickInt(cli.MaxChunkSize, file.MaxChunkSize, def.MaxChunkSize)
	result.OverlapSize = pickInt(cli.OverlapSize, file.OverlapSize, def.OverlapSize)
	result.CacheMaxEntries = pickInt(cli.CacheMaxEntries, file.CacheMaxEntries, def.CacheMaxEntries)
	result.Parallelism = pickInt(cli.Parallelism, file.Parallelism, def.Parallelism)
	result.MemoryBudgetMB = pickInt64(cli.MemoryBudgetMB, file.MemoryBudgetMB, def.MemoryBudgetMB)

	result.PreserveStructure = cli.PreserveStructure || file.PreserveStructure
	result.EnableEnrichment = cli.EnableEnrichment || file.EnableEnrichment
	result.Strict = cli.Strict || file.Strict
	result.Verbose = cli.Verbose || file.Verbose
	result.DryRun = cli.DryRun || file.DryRun
	result.CacheEnabled = cli.CacheEnabled || file.CacheEnabled

	result.Files = append(append([]string{}, file.Files...), cli.Files...)

	return &result
}

func pickInt(cliVal, fileVal, defVal int) int {
	if cliVal != defVal && cliVal != 0 {
		return cliVal
	}
	if fileVal != 0 {
		return fileVal
	}
	return defVal
}

func pickInt64(cliVal, fileVal, defVal int64) int64 {
	if cliVal != defVal && cliVal != 0 {
		return cliVal
	}
	if fileVal != 0 {
		return fileVal
	}
	return defVal
}

func (c Config) clone() *Config {
	out := c
	out.Files = append([]string{}, c.Files...)
	return &out
}
