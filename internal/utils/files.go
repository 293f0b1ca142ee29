package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDirectoriesWithGoFiles walks each root and returns every directory that
// contains at least one non-generated Go source file. Vendor, testdata, and
// hidden or underscore-prefixed directories are skipped. Results are sorted
// and de-duplicated.
func ScanDirectoriesWithGoFiles(roots []string) ([]string, error) {
	found := make(map[string]bool)

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDir(d.Name(), path, root) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(d.Name(), ".go") && !strings.HasSuffix(d.Name(), "_test.go") {
				found[filepath.Dir(path)] = true
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	dirs := make([]string, 0, len(found))
	for dir := range found {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}

func skipDir(name, path, root string) bool {
	if path == root {
		return false
	}
	if name == "vendor" || name == "testdata" {
		return true
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
