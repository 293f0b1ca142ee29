package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/toyz/relay/internal/cli"
	"github.com/toyz/relay/internal/utils"
)

func main() {
	// Define command-line flags
	var (
		moduleFlag  = flag.String("module", "", "Custom module name (defaults to go.mod module)")
		suffixFlag  = flag.String("suffix", "", "Generated proxy type suffix (defaults to Client)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flag.Bool("clean", false, "Delete all relay_gen.go files from the specified directories")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Relay Dispatch Proxy Generator\n")
		fmt.Fprintf(os.Stderr, "Recursively scans directories for interfaces with relay:: markers, flattens their\n")
		fmt.Fprintf(os.Stderr, "embedding chains, and generates dispatch proxy types.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for marked interfaces\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                  # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./internal/api ./internal/store        # Scan specific directories\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --module github.com/myorg/myapp ./...  # Specify custom module name\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --suffix Proxy ./...                   # Emit FooProxy instead of FooClient\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                          # Delete all relay_gen.go files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	// Create diagnostic system based on flags
	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Section("Relay Proxy Generator")

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
		if *suffixFlag != "" {
			diagnostics.List("Proxy suffix: %s", *suffixFlag)
		}
	}

	runner := cli.NewRunner(diagnostics)
	err := runner.Run(cli.Config{
		Patterns:   args,
		ModuleName: *moduleFlag,
		Suffix:     *suffixFlag,
		Verbose:    *verboseFlag,
		Quiet:      *quietFlag,
		Clean:      *cleanFlag,
	})
	if err != nil {
		diagnostics.Error("%v", err)
		os.Exit(1)
	}

	summary := runner.Summary()
	if *verboseFlag && len(summary.FilesWritten) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.FilesWritten {
			diagnostics.List("%s", file)
		}
	}
}
