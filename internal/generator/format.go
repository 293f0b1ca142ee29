package generator

import (
	"golang.org/x/tools/imports"
)

// FormatSource runs goimports-style formatting over generated source: gofmt
// layout plus pruning of any imports the rendered code did not end up using.
func FormatSource(filename, src string) (string, error) {
	formatted, err := imports.Process(filename, []byte(src), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: false,
	})
	if err != nil {
		return "", err
	}
	return string(formatted), nil
}
