package templates

import (
	"fmt"
	"sort"
	"strings"
)

// ImportManager collects the imports a generated file needs and renders them
// as a grouped import block: standard library first, then module imports.
// Final dedup and ordering is still goimports' job; the manager only has to
// produce a parseable block.
type ImportManager struct {
	stdlib  map[string]bool
	module  map[string]bool
	aliased map[string]string // alias -> path
}

// NewImportManager creates an empty import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		stdlib:  make(map[string]bool),
		module:  make(map[string]bool),
		aliased: make(map[string]string),
	}
}

// AddImport adds an import path, classified as standard library when its
// first segment carries no dot
func (im *ImportManager) AddImport(path string) {
	if path == "" {
		return
	}
	if isStdlibPath(path) {
		im.stdlib[path] = true
	} else {
		im.module[path] = true
	}
}

// AddAliasedImport adds an import under an explicit alias
func (im *ImportManager) AddAliasedImport(alias, path string) {
	if alias != "" && path != "" {
		im.aliased[alias] = path
	}
}

// Merge folds another manager's imports into this one
func (im *ImportManager) Merge(other *ImportManager) {
	for path := range other.stdlib {
		im.stdlib[path] = true
	}
	for path := range other.module {
		im.module[path] = true
	}
	for alias, path := range other.aliased {
		im.aliased[alias] = path
	}
}

// IsEmpty reports whether any imports were added
func (im *ImportManager) IsEmpty() bool {
	return len(im.stdlib) == 0 && len(im.module) == 0 && len(im.aliased) == 0
}

// Render generates the import block, or an empty string when nothing was added
func (im *ImportManager) Render() string {
	if im.IsEmpty() {
		return ""
	}

	var groups [][]string
	if len(im.stdlib) > 0 {
		groups = append(groups, sortedQuoted(im.stdlib, nil))
	}
	if len(im.module) > 0 || len(im.aliased) > 0 {
		groups = append(groups, sortedQuoted(im.module, im.aliased))
	}

	var flat []string
	for _, group := range groups {
		flat = append(flat, group...)
	}
	if len(flat) == 1 {
		return fmt.Sprintf("import %s\n", flat[0])
	}

	var out strings.Builder
	out.WriteString("import (\n")
	for i, group := range groups {
		if i > 0 {
			out.WriteString("\n")
		}
		for _, line := range group {
			out.WriteString("\t" + line + "\n")
		}
	}
	out.WriteString(")\n")
	return out.String()
}

func sortedQuoted(plain map[string]bool, aliased map[string]string) []string {
	var lines []string
	for path := range plain {
		lines = append(lines, fmt.Sprintf("%q", path))
	}
	for alias, path := range aliased {
		lines = append(lines, fmt.Sprintf("%s %q", alias, path))
	}
	sort.Strings(lines)
	return lines
}

// isStdlibPath treats any path whose first segment has no dot as stdlib
func isStdlibPath(path string) bool {
	first := path
	if i := strings.Index(path, "/"); i != -1 {
		first = path[:i]
	}
	return !strings.Contains(first, ".")
}
