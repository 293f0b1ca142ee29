// Package generator renders flattened interfaces into proxy source files. For
// each package with eligible interfaces it emits one relay_gen.go containing a
// dispatch proxy per interface and an init that publishes the route table.
package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/relay/internal/errors"
	"github.com/toyz/relay/internal/models"
	"github.com/toyz/relay/internal/registry"
	"github.com/toyz/relay/internal/templates"
	"github.com/toyz/relay/pkg/relay"
)

// GeneratedFileName is the name of the emitted file in each package
const GeneratedFileName = "relay_gen.go"

// DefaultSuffix is appended to interface names to form proxy type names
const DefaultSuffix = "Client"

// RuntimeImportPath is the import path of the dispatch runtime generated
// proxies depend on
const RuntimeImportPath = "github.com/toyz/relay/pkg/relay"

// Generator renders proxy files from flattened interfaces
type Generator struct {
	suffix string
	verbs  *registry.VerbRegistry
}

// NewGenerator creates a generator using the default proxy type suffix
func NewGenerator() *Generator {
	return NewGeneratorWithSuffix(DefaultSuffix)
}

// NewGeneratorWithSuffix creates a generator with a custom proxy type suffix
func NewGeneratorWithSuffix(suffix string) *Generator {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &Generator{
		suffix: suffix,
		verbs:  registry.NewDefaultVerbRegistry(),
	}
}

// hasBody reports whether a canonical verb carries a request body
func (g *Generator) hasBody(verb string) bool {
	v, ok := g.verbs.Resolve(verb)
	return ok && v.HasBody
}

// GeneratePackage renders the proxy file for one package. It returns nil when
// no interface in the package is eligible for generation.
func (g *Generator) GeneratePackage(metadata *models.PackageMetadata, flattened []models.FlattenedInterface) (*models.GeneratedFile, error) {
	if metadata == nil {
		return nil, errors.New(errors.GenerationErrorCode, "package metadata cannot be nil")
	}
	if len(flattened) == 0 {
		return nil, nil
	}

	imports := templates.NewImportManager()
	imports.AddImport("context")
	imports.AddImport("fmt")
	imports.AddImport(RuntimeImportPath)

	header, err := templates.ExecuteTemplate("file-header", templates.FileHeaderTemplate, templates.FileHeaderData{
		PackageName: metadata.PackageName,
		Imports:     imports.Render(),
	})
	if err != nil {
		return nil, err
	}

	var body strings.Builder
	body.WriteString(header)

	var proxies []models.GeneratedProxy
	var routes []templates.RouteData

	for _, iface := range flattened {
		proxyCode, err := g.renderProxy(iface)
		if err != nil {
			return nil, err
		}
		body.WriteString("\n")
		body.WriteString(proxyCode)

		dispatch := iface.DispatchMethods()
		proxies = append(proxies, models.GeneratedProxy{
			InterfaceName: iface.Name,
			TypeName:      g.typeName(iface),
			MethodCount:   len(dispatch),
			RouteCount:    len(dispatch),
		})
		for _, m := range dispatch {
			routes = append(routes, templates.RouteData{
				Verb:          m.Verb,
				Path:          m.Route,
				InterfaceName: iface.Name,
				MethodName:    m.Name,
				PackageName:   metadata.PackageName,
				HasBody:       g.hasBody(m.Verb),
			})
		}
	}

	registration, err := templates.ExecuteTemplate("route-registration", templates.RouteRegistrationTemplate, templates.RouteRegistrationData{
		Routes: routes,
	})
	if err != nil {
		return nil, err
	}
	body.WriteString("\n")
	body.WriteString(registration)

	filePath := filepath.Join(metadata.PackagePath, GeneratedFileName)
	formatted, err := FormatSource(filePath, body.String())
	if err != nil {
		return nil, errors.WrapGenerateError(filePath, err)
	}

	return &models.GeneratedFile{
		PackageName: metadata.PackageName,
		FilePath:    filePath,
		Content:     formatted,
		Proxies:     proxies,
	}, nil
}

// typeName returns the proxy type name for an interface, honoring a per
// interface suffix override from extraction
func (g *Generator) typeName(iface models.FlattenedInterface) string {
	suffix := iface.Suffix
	if suffix == "" {
		suffix = g.suffix
	}
	return iface.Name + suffix
}

// renderProxy renders the proxy struct, constructor, and one method per
// dispatchable merged method
func (g *Generator) renderProxy(iface models.FlattenedInterface) (string, error) {
	typeName := g.typeName(iface)
	decl, ref := typeParamLists(iface.TypeParams)

	out, err := templates.ExecuteTemplate("proxy-type", templates.ProxyTypeTemplate, templates.ProxyTypeData{
		TypeName:       typeName,
		InterfaceName:  iface.Name,
		TypeParamsDecl: decl,
		TypeParamsRef:  ref,
	})
	if err != nil {
		return "", err
	}

	var body strings.Builder
	body.WriteString(out)
	for _, m := range iface.DispatchMethods() {
		body.WriteString("\n")
		body.WriteString(g.renderMethod(typeName, ref, m))
	}
	return body.String(), nil
}

// renderMethod renders one proxy method body. The route template's parameters
// are filled from same-named arguments; for body-carrying verbs the first
// remaining argument becomes the payload, and any leftovers become query
// string values.
func (g *Generator) renderMethod(typeName, typeParamsRef string, m models.MethodDeclaration) string {
	route := relay.Path(m.Route)

	var b strings.Builder
	fmt.Fprintf(&b, "// %s dispatches %s %s.\n", m.Name, m.Verb, m.Route)
	fmt.Fprintf(&b, "func (c *%s%s) %s(%s)%s {\n",
		typeName, typeParamsRef, m.Name, paramList(m.Params), resultList(m.Results))

	// Receiver context argument, or a background context when the signature
	// carries none.
	ctxVar := ""
	params := m.Params
	if len(params) > 0 && params[0].Type.String() == "context.Context" {
		ctxVar = params[0].Name
		params = params[1:]
	} else {
		ctxVar = "ctx"
		b.WriteString("\tctx := context.Background()\n")
	}

	fmt.Fprintf(&b, "\treq := relay.NewRequest(%q, %q)\n", m.Verb, m.Route)

	bodyBound := false
	for _, p := range params {
		switch {
		case route.HasParam(p.Name):
			fmt.Fprintf(&b, "\treq.WithPathParam(%q, %s)\n", p.Name, stringExpr(p))
		case !bodyBound && g.hasBody(m.Verb):
			fmt.Fprintf(&b, "\treq.WithBody(%s)\n", p.Name)
			bodyBound = true
		case p.Type.Name == models.VariadicNode:
			fmt.Fprintf(&b, "\tfor _, v := range %s {\n", p.Name)
			fmt.Fprintf(&b, "\t\treq.WithQuery(%q, %s)\n", p.Name, stringExprFor("v", variadicElem(p.Type)))
			b.WriteString("\t}\n")
		default:
			fmt.Fprintf(&b, "\treq.WithQuery(%q, %s)\n", p.Name, stringExpr(p))
		}
	}

	outs, hasErr := splitResults(m.Results)
	for i, t := range outs {
		fmt.Fprintf(&b, "\tvar out%d %s\n", i, t.String())
	}

	target := "nil"
	if len(outs) > 0 {
		target = "&out0"
	}

	returns := make([]string, 0, len(outs)+1)
	for i := range outs {
		returns = append(returns, fmt.Sprintf("out%d", i))
	}

	if hasErr {
		fmt.Fprintf(&b, "\tif err := c.dispatcher.Dispatch(%s, req, %s); err != nil {\n", ctxVar, target)
		fmt.Fprintf(&b, "\t\treturn %s\n", strings.Join(append(append([]string{}, returns...), "err"), ", "))
		b.WriteString("\t}\n")
		fmt.Fprintf(&b, "\treturn %s\n", strings.Join(append(append([]string{}, returns...), "nil"), ", "))
	} else {
		fmt.Fprintf(&b, "\t_ = c.dispatcher.Dispatch(%s, req, %s)\n", ctxVar, target)
		if len(returns) > 0 {
			fmt.Fprintf(&b, "\treturn %s\n", strings.Join(returns, ", "))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// splitResults separates decode targets from a trailing error result
func splitResults(results []models.TypeExpression) (outs []models.TypeExpression, hasErr bool) {
	if n := len(results); n > 0 && results[n-1].String() == "error" {
		return results[:n-1], true
	}
	return results, false
}

// paramList renders a method parameter list
func paramList(params []models.Argument) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + " " + p.Type.String()
	}
	return strings.Join(parts, ", ")
}

// resultList renders a method result list with a leading space
func resultList(results []models.TypeExpression) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return " " + results[0].String()
	default:
		parts := make([]string, len(results))
		for i, r := range results {
			parts[i] = r.String()
		}
		return " (" + strings.Join(parts, ", ") + ")"
	}
}

// typeParamLists renders the declaration and use site generic parameter lists
func typeParamLists(params []models.TypeParam) (decl, ref string) {
	if len(params) == 0 {
		return "", ""
	}
	decls := make([]string, len(params))
	refs := make([]string, len(params))
	for i, p := range params {
		decls[i] = p.Name + " " + p.Constraint
		refs[i] = p.Name
	}
	return "[" + strings.Join(decls, ", ") + "]", "[" + strings.Join(refs, ", ") + "]"
}

// stringExpr renders an argument as a string-typed expression
func stringExpr(p models.Argument) string {
	return stringExprFor(p.Name, p.Type)
}

func stringExprFor(expr string, t models.TypeExpression) string {
	if t.String() == "string" {
		return expr
	}
	return fmt.Sprintf("fmt.Sprint(%s)", expr)
}

// variadicElem returns the element type of a variadic parameter
func variadicElem(t models.TypeExpression) models.TypeExpression {
	if t.Name == models.VariadicNode && len(t.Children) == 1 {
		return t.Children[0]
	}
	return t
}
