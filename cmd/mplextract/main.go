package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kr/pretty"

	"github.com/dphoyes/phototimeshift/output"
	"github.com/dphoyes/phototimeshift/playlist"
	"github.com/dphoyes/phototimeshift/playlist/mpls"
)

const version = "0.1"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		format string
		strict bool
		dump   bool
	)
	flag.StringVar(&format, "format", "plain", "output format: plain, json, yaml, csv or table")
	flag.BoolVar(&strict, "strict", false, "verify descriptor markers, date copies and BCD digits")
	flag.BoolVar(&dump, "dump", false, "pretty-print each decoded playlist to stderr")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return 2
	}
	dir := flag.Arg(0)

	formatter, err := output.NewFormatter(format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		return 2
	}

	config := mpls.DefaultConfig()
	config.Walker.StrictMode = strict

	ctx := context.Background()

	stamps, err := playlist.NewScannerWithConfig(config).Scan(ctx, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		return 1
	}

	if dump {
		dumpPlaylists(ctx, config, dir)
	}

	rendered, err := formatter.Format(stamps, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		return 1
	}
	_, _ = os.Stdout.Write(rendered)

	return 0
}

// dumpPlaylists re-parses every playlist and writes the decoded structures to
// stderr. Parse failures were already reported by the scan, so they are only
// summarized here.
func dumpPlaylists(ctx context.Context, config *mpls.Config, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	handler := mpls.NewHandlerWithConfig(config)
	for _, entry := range entries {
		if !handler.CanHandle(entry.Name()) {
			continue
		}
		pl, err := handler.Parse(ctx, filepath.Join(dir, entry.Name()))
		if pl != nil {
			_, _ = pretty.Fprintf(os.Stderr, "%# v\n", pl)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", entry.Name(), err)
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Version: %s\n", version)
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <path to folder containing *.MPL files>\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}
