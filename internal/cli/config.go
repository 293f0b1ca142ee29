package cli

import "github.com/toyz/relay/internal/errors"

// Config holds the configuration for a generator run
type Config struct {
	// Patterns is the list of directory patterns to scan, supporting the
	// Go-style "./..." recursive form
	Patterns []string

	// ModuleName overrides the module name read from go.mod
	ModuleName string

	// Suffix overrides the generated proxy type suffix (default "Client")
	Suffix string

	// Verbose enables detailed progress output
	Verbose bool

	// Quiet suppresses everything except errors
	Quiet bool

	// Clean removes previously generated files instead of generating
	Clean bool
}

// Validate checks the configuration for contradictions
func (c Config) Validate() error {
	if len(c.Patterns) == 0 {
		return errors.New(errors.ValidationErrorCode, "at least one directory pattern is required").
			WithSuggestion("Pass one or more directories, e.g. ./... or ./internal/api")
	}
	if c.Verbose && c.Quiet {
		return errors.New(errors.ValidationErrorCode, "--verbose and --quiet are mutually exclusive")
	}
	return nil
}
