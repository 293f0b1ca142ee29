// Package templates holds the text templates the generator renders proxy
// files from, plus the import manager that assembles their import blocks.
package templates

import (
	"strings"
	"text/template"

	"github.com/toyz/relay/internal/errors"
)

// FileHeaderData is the data for the generated file header
type FileHeaderData struct {
	PackageName string
	Imports     string
}

// FileHeaderTemplate renders the top of a generated file
const FileHeaderTemplate = `// Code generated by relay. DO NOT EDIT.
// This file was automatically generated and should not be modified manually.

package {{.PackageName}}

{{.Imports}}`

// ProxyTypeData is the data for a proxy struct and its constructor
type ProxyTypeData struct {
	// TypeName is the generated type name, e.g. "UserServiceClient"
	TypeName string

	// InterfaceName is the flattened interface the proxy fronts
	InterfaceName string

	// TypeParamsDecl is the declaration-site type parameter list including
	// constraints, e.g. "[T any, K comparable]", empty for non-generic types
	TypeParamsDecl string

	// TypeParamsRef is the use-site type argument list, e.g. "[T, K]"
	TypeParamsRef string
}

// ProxyTypeTemplate renders the proxy struct and constructor
const ProxyTypeTemplate = `// {{.TypeName}} is a generated dispatch proxy for {{.InterfaceName}}. Each
// method builds a relay.Request from its route template and issues it through
// the configured dispatcher.
type {{.TypeName}}{{.TypeParamsDecl}} struct {
	dispatcher relay.Dispatcher
}

// New{{.TypeName}} creates a {{.InterfaceName}} proxy dispatching through d.
func New{{.TypeName}}{{.TypeParamsDecl}}(d relay.Dispatcher) *{{.TypeName}}{{.TypeParamsRef}} {
	return &{{.TypeName}}{{.TypeParamsRef}}{dispatcher: d}
}
`

// RouteData describes one registry entry emitted into the generated init
type RouteData struct {
	Verb          string
	Path          string
	InterfaceName string
	MethodName    string
	PackageName   string
	HasBody       bool
}

// RouteRegistrationData is the data for the route registration block
type RouteRegistrationData struct {
	Routes []RouteData
}

// RouteRegistrationTemplate renders the init function that publishes the
// package's route table into the global registry
const RouteRegistrationTemplate = `func init() {
{{- range .Routes}}
	relay.DefaultRouteRegistry.RegisterRoute(relay.RouteInfo{
		Verb:          "{{.Verb}}",
		Path:          relay.Path("{{.Path}}"),
		InterfaceName: "{{.InterfaceName}}",
		MethodName:    "{{.MethodName}}",
		PackageName:   "{{.PackageName}}",
		HasBody:       {{.HasBody}},
	})
{{- end}}
}
`

// ExecuteTemplate parses and executes a template against data
func ExecuteTemplate(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}
	return out.String(), nil
}
