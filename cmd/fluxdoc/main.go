package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/fluxdoc/fluxdoc/internal/cli"
	"github.com/fluxdoc/fluxdoc/pkg/errs"
)

var version = "dev"

func main() {
	var c cli.CLI

	kctx := kong.Parse(&c,
		kong.Name("fluxdoc"),
		kong.Description("Retrieval-optimized document chunking for embedding pipelines"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	err := kctx.Run()
	os.Exit(exitCode(err))
}

// exitCode maps a command error to spec.md §6's resolved exit-code
// scheme: 0 clean, 1 user-facing input/option problems, 2 everything
// else operational, 130 on cancellation, mirroring the 128+SIGINT
// convention shells use for an interrupted foreground process.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, context.Canceled) || errs.Is(err, errs.Cancelled) {
		fmt.Fprintf(os.Stderr, "cancelled: %v\n", err)
		return 130
	}

	if kind, ok := errs.KindOf(err); ok {
		switch kind {
		case errs.InputNotFound, errs.UnsupportedFormat:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		case errs.Cancelled:
			fmt.Fprintf(os.Stderr, "cancelled: %v\n", err)
			return 130
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
