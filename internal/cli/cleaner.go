package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/relay/internal/errors"
	"github.com/toyz/relay/internal/generator"
	"github.com/toyz/relay/internal/utils"
)

// Cleaner removes previously generated proxy files
type Cleaner struct {
	diagnostics *utils.DiagnosticSystem
}

// NewCleaner creates a cleaner reporting through the given diagnostics
func NewCleaner(diagnostics *utils.DiagnosticSystem) *Cleaner {
	return &Cleaner{diagnostics: diagnostics}
}

// Clean removes the generated file from every directory and returns how many
// files were removed
func (c *Cleaner) Clean(dirs []string) (int, error) {
	removed := 0
	for _, dir := range dirs {
		path := filepath.Join(dir, generator.GeneratedFileName)
		if !utils.FileExists(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, errors.WrapFileSystemError("remove", path, err)
		}
		c.diagnostics.Verbose("Removed %s", path)
		removed++
	}
	return removed, nil
}
