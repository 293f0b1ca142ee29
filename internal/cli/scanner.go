package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/relay/internal/errors"
	"github.com/toyz/relay/internal/utils"
)

// DirectoryScanner resolves directory patterns to the set of package
// directories that contain Go files
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories resolves the provided patterns and returns every directory
// under them that contains Go source files. The Go-style "./..." suffix scans
// recursively; a plain directory is scanned recursively as well, matching the
// walker underneath.
func (s *DirectoryScanner) ScanDirectories(patterns []string) ([]string, error) {
	var roots []string

	for _, pattern := range patterns {
		dir := pattern
		if strings.HasSuffix(pattern, "/...") {
			dir = strings.TrimSuffix(pattern, "/...")
			if dir == "" {
				dir = "."
			}
		}

		cleanPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, errors.WrapWithOperation("resolve", fmt.Sprintf("path %s", dir), err)
		}
		roots = append(roots, cleanPath)
	}

	return utils.ScanDirectoriesWithGoFiles(roots)
}
