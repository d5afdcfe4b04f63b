// Verdant grows procedural plants from parametric stochastic L-systems.
// Usage: verdant [--version] [--seed <n>] [--iterations <n>] [--grow <f>]
// [--shapes] [--obj] [--plain] <config file>
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nmoller/verdant/cli"
	"github.com/nmoller/verdant/engine"
	"github.com/nmoller/verdant/loader"
	"github.com/nmoller/verdant/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: verdant [--version] [--seed <n>] [--iterations <n>] [--grow <f>] [--shapes] [--obj] [--plain] <config file>\n")
	os.Exit(1)
}

func main() {
	var configPath string
	seed := time.Now().UnixNano()
	iterations := int64(-1)
	interpolation := 1.0
	var exportShapes, exportOBJ, plain bool

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("verdant %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			v, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid seed %q\n", args[i])
				os.Exit(1)
			}
			seed = v
		case "--iterations":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--iterations requires a number\n")
				os.Exit(1)
			}
			i++
			v, err := strconv.ParseInt(args[i], 10, 32)
			if err != nil || v < 0 {
				fmt.Fprintf(os.Stderr, "invalid iteration count %q\n", args[i])
				os.Exit(1)
			}
			iterations = v
		case "--grow":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--grow requires a number in [0, 1]\n")
				os.Exit(1)
			}
			i++
			v, err := strconv.ParseFloat(args[i], 32)
			if err != nil || v < 0 || v > 1 {
				fmt.Fprintf(os.Stderr, "invalid growth %q\n", args[i])
				os.Exit(1)
			}
			interpolation = v
		case "--shapes":
			exportShapes = true
		case "--obj":
			exportOBJ = true
		case "--plain":
			plain = true
		default:
			if configPath == "" {
				configPath = args[i]
			}
		}
	}

	if configPath == "" {
		usage()
	}

	cfg, err := loader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	for _, w := range loader.Validate(cfg).Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if iterations >= 0 {
		cfg.Rules.Iterations = uint32(iterations)
	}

	eng := engine.New(cfg, seed)
	eng.Interpolation = float32(interpolation)

	if exportShapes || exportOBJ {
		c := cli.New(eng)
		if exportShapes {
			err = c.ExportShapes()
		} else {
			err = c.ExportOBJ()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Plain mode prints shape records, for pipes and scripts.
	if plain || !isTerminal() {
		if err := cli.New(eng).ExportShapes(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := tui.Run(eng, seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
