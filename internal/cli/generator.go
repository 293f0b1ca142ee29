// Package cli coordinates the generation pipeline: scan directories, extract
// interface declarations, flatten them, and write one proxy file per package.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/toyz/relay/internal/errors"
	"github.com/toyz/relay/internal/flatten"
	"github.com/toyz/relay/internal/generator"
	"github.com/toyz/relay/internal/parser"
	"github.com/toyz/relay/internal/utils"
)

// Summary captures what one generation run did
type Summary struct {
	PackagesScanned  int
	InterfacesFound  int
	ProxiesGenerated int
	RoutesRegistered int
	FilesWritten     []string
	FilesCleaned     int
	Duration         time.Duration
}

// Runner coordinates the CLI generation process
type Runner struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	parser         *parser.Parser
	cleaner        *Cleaner
	diagnostics    *utils.DiagnosticSystem
	summary        Summary
}

// NewRunner creates a runner reporting through the given diagnostics
func NewRunner(diagnostics *utils.DiagnosticSystem) *Runner {
	return &Runner{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		parser:         parser.NewParser(),
		cleaner:        NewCleaner(diagnostics),
		diagnostics:    diagnostics,
	}
}

// Summary returns the summary of the last run
func (r *Runner) Summary() Summary {
	return r.summary
}

// Run executes the complete generation (or clean) process
func (r *Runner) Run(config Config) error {
	start := time.Now()
	r.summary = Summary{}

	if err := config.Validate(); err != nil {
		return err
	}

	r.diagnostics.Verbose("Scanning patterns: %v", config.Patterns)
	packageDirs, err := r.scanner.ScanDirectories(config.Patterns)
	if err != nil {
		return errors.Wrap(errors.FileSystemErrorCode, "failed to scan directories", err).
			WithSuggestion("Check that the specified directories exist and are readable")
	}
	if len(packageDirs) == 0 {
		return errors.New(errors.ValidationErrorCode, "no Go packages found in specified directories").
			WithSuggestion("Ensure the directories contain Go files").
			WithSuggestion("Try the recursive pattern ./...")
	}
	r.summary.PackagesScanned = len(packageDirs)

	if config.Clean {
		removed, err := r.cleaner.Clean(packageDirs)
		r.summary.FilesCleaned = removed
		r.summary.Duration = time.Since(start)
		if err != nil {
			return err
		}
		r.diagnostics.Success("Removed %d generated file(s)", removed)
		return nil
	}

	moduleName, err := r.moduleResolver.ResolveModuleName(config.ModuleName)
	if err != nil {
		return errors.Wrap(errors.ValidationErrorCode, "failed to resolve module name", err).
			WithSuggestion("Check your go.mod file exists and is valid").
			WithSuggestion("Try specifying --module explicitly")
	}
	r.diagnostics.Verbose("Resolved module name: %s", moduleName)

	codeGen := generator.NewGeneratorWithSuffix(config.Suffix)
	failures := errors.NewMultipleErrors()

	r.diagnostics.PhaseHeader("Generating dispatch proxies")
	for _, dir := range packageDirs {
		if err := r.generatePackage(codeGen, moduleName, dir); err != nil {
			relayErr, ok := err.(errors.RelayError)
			if !ok {
				relayErr = errors.Wrap(errors.UnknownErrorCode, "generation failed", err)
			}
			failures.Add(relayErr)
			r.diagnostics.Error("%s: %v", dir, err)
		}
	}

	r.summary.Duration = time.Since(start)
	if !failures.IsEmpty() {
		return failures
	}

	r.diagnostics.Summary("Generation summary", map[string]interface{}{
		"packages": r.summary.PackagesScanned,
		"proxies":  r.summary.ProxiesGenerated,
		"routes":   r.summary.RoutesRegistered,
		"files":    len(r.summary.FilesWritten),
		"elapsed":  r.summary.Duration.Round(time.Millisecond),
	})
	r.diagnostics.GenerationComplete()
	return nil
}

// generatePackage runs extract, flatten, and render for one directory. A
// package with no eligible interfaces is skipped silently.
func (r *Runner) generatePackage(codeGen *generator.Generator, moduleName, dir string) error {
	if importPath, err := r.moduleResolver.BuildPackagePath(moduleName, dir); err == nil {
		r.diagnostics.Verbose("Scanning %s", importPath)
	}

	metadata, err := r.parser.ParseDirectory(dir)
	if err != nil {
		return err
	}
	r.summary.InterfacesFound += len(metadata.Interfaces)
	for _, warning := range metadata.Warnings {
		r.diagnostics.Warn("%s", warning)
	}
	if len(metadata.Interfaces) == 0 {
		return nil
	}

	flattened, err := flatten.Flatten(metadata.Interfaces)
	if err != nil {
		return err
	}

	file, err := codeGen.GeneratePackage(metadata, flattened)
	if err != nil {
		return err
	}
	if file == nil {
		r.diagnostics.Verbose("No dispatchable interfaces in %s", dir)
		return nil
	}

	if err := os.WriteFile(file.FilePath, []byte(file.Content), 0644); err != nil {
		return errors.WrapFileSystemError("write", file.FilePath, err)
	}

	r.summary.FilesWritten = append(r.summary.FilesWritten, file.FilePath)
	r.summary.ProxiesGenerated += len(file.Proxies)
	for _, proxy := range file.Proxies {
		r.summary.RoutesRegistered += proxy.RouteCount
		r.diagnostics.PhaseItem(fmt.Sprintf("%s -> %s (%d routes)", proxy.InterfaceName, proxy.TypeName, proxy.RouteCount))
	}
	return nil
}
