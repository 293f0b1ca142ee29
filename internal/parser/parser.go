// Package parser extracts interface declarations from Go source. It walks the
// AST looking for interface types, records their type parameters, embedded
// interfaces, and method signatures, and attaches dispatch markers parsed from
// method doc comments. The output is the plain declaration model consumed by
// the flattening engine; no semantic type resolution happens here.
package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"
	"os"
	"sort"
	"strings"

	"github.com/toyz/relay/internal/annotations"
	"github.com/toyz/relay/internal/errors"
	"github.com/toyz/relay/internal/models"
)

// Parser extracts relay declaration metadata from Go source
type Parser struct {
	fileSet *token.FileSet
	markers *annotations.MarkerParser
}

// NewParser creates a new declaration parser with the built-in verb set
func NewParser() *Parser {
	return &Parser{
		fileSet: token.NewFileSet(),
		markers: annotations.NewDefaultMarkerParser(),
	}
}

// ParseSource parses source code from a string, mainly for testing
func (p *Parser) ParseSource(filename, source string) (*models.PackageMetadata, error) {
	file, err := goparser.ParseFile(p.fileSet, filename, source, goparser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError(filename, err)
	}

	metadata := &models.PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: "./",
	}

	if err := p.extractFile(file, filename, metadata); err != nil {
		return nil, err
	}
	collectWarnings(metadata)
	return metadata, nil
}

// ParseDirectory scans the specified directory for .go files and extracts
// every interface declaration found
func (p *Parser) ParseDirectory(path string) (*models.PackageMetadata, error) {
	notTest := func(info os.FileInfo) bool {
		return !strings.HasSuffix(info.Name(), "_test.go")
	}
	pkgs, err := goparser.ParseDir(p.fileSet, path, notTest, goparser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError(fmt.Sprintf("directory %s", path), err)
	}

	if len(pkgs) == 0 {
		return nil, errors.Newf(errors.ExtractionErrorCode, "no Go packages found in directory %s", path)
	}
	if len(pkgs) > 1 {
		return nil, errors.Newf(errors.ExtractionErrorCode, "multiple packages found in directory %s", path)
	}

	var pkg *ast.Package
	var packageName string
	for name, astPkg := range pkgs {
		pkg = astPkg
		packageName = name
	}

	metadata := &models.PackageMetadata{
		PackageName: packageName,
		PackagePath: path,
	}

	// Files in deterministic order so declaration order is stable.
	for _, fileName := range sortedKeys(pkg.Files) {
		if err := p.extractFile(pkg.Files[fileName], fileName, metadata); err != nil {
			return nil, err
		}
	}
	collectWarnings(metadata)

	return metadata, nil
}

// extractFile appends every interface declared in one file to the metadata
func (p *Parser) extractFile(file *ast.File, fileName string, metadata *models.PackageMetadata) error {
	var firstErr error

	ast.Inspect(file, func(n ast.Node) bool {
		if firstErr != nil {
			return false
		}
		genDecl, ok := n.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			return true
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			ifaceType, ok := typeSpec.Type.(*ast.InterfaceType)
			if !ok {
				continue
			}

			decl, err := p.extractInterface(typeSpec, ifaceType, fileName, metadata.PackageName)
			if err != nil {
				firstErr = err
				return false
			}
			metadata.Interfaces = append(metadata.Interfaces, decl)
		}
		return true
	})

	return firstErr
}

// extractInterface builds the declaration model for a single interface
func (p *Parser) extractInterface(typeSpec *ast.TypeSpec, ifaceType *ast.InterfaceType, fileName, packageName string) (models.InterfaceDeclaration, error) {
	decl := models.InterfaceDeclaration{
		Name:        typeSpec.Name.Name,
		PackageName: packageName,
		FileName:    fileName,
	}

	if typeSpec.TypeParams != nil {
		for _, field := range typeSpec.TypeParams.List {
			constraint := types.ExprString(field.Type)
			for _, name := range field.Names {
				decl.TypeParams = append(decl.TypeParams, models.TypeParam{
					Name:       name.Name,
					Constraint: constraint,
				})
			}
		}
	}

	if ifaceType.Methods == nil {
		return decl, nil
	}

	for _, field := range ifaceType.Methods.List {
		if len(field.Names) == 0 {
			// Embedded interface: a base reference with the type
			// arguments supplied at the embedding site.
			decl.Bases = append(decl.Bases, p.extractBaseReference(field.Type))
			continue
		}

		funcType, ok := field.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		for _, name := range field.Names {
			m, err := p.extractMethod(name.Name, decl.Name, funcType, field.Doc, fileName)
			if err != nil {
				return decl, err
			}
			decl.Methods = append(decl.Methods, m)
		}
	}

	return decl, nil
}

// extractBaseReference converts an embedded-interface expression into a
// BaseReference. Generic instantiations carry their type arguments; anything
// unrecognized degrades to a plain named reference.
func (p *Parser) extractBaseReference(expr ast.Expr) models.BaseReference {
	switch e := expr.(type) {
	case *ast.IndexExpr:
		return models.BaseReference{
			Target:   types.ExprString(e.X),
			TypeArgs: []models.TypeExpression{typeExprFrom(e.Index)},
		}
	case *ast.IndexListExpr:
		args := make([]models.TypeExpression, len(e.Indices))
		for i, idx := range e.Indices {
			args[i] = typeExprFrom(idx)
		}
		return models.BaseReference{
			Target:   types.ExprString(e.X),
			TypeArgs: args,
		}
	default:
		return models.BaseReference{Target: types.ExprString(expr)}
	}
}

// extractMethod builds one method declaration, parsing any dispatch marker in
// the doc comment. A malformed marker is a syntax error; a method with no
// marker at all is simply not dispatchable.
func (p *Parser) extractMethod(name, owner string, funcType *ast.FuncType, doc *ast.CommentGroup, fileName string) (models.MethodDeclaration, error) {
	m := models.MethodDeclaration{
		Name:  name,
		Owner: owner,
	}

	if funcType.Params != nil {
		argIndex := 0
		for _, field := range funcType.Params.List {
			t := typeExprFrom(field.Type)
			if len(field.Names) == 0 {
				m.Params = append(m.Params, models.Argument{
					Name: fmt.Sprintf("arg%d", argIndex),
					Type: t,
				})
				argIndex++
				continue
			}
			for _, argName := range field.Names {
				m.Params = append(m.Params, models.Argument{
					Name: argName.Name,
					Type: t.Clone(),
				})
				argIndex++
			}
		}
	}

	if funcType.Results != nil {
		for _, field := range funcType.Results.List {
			t := typeExprFrom(field.Type)
			count := len(field.Names)
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				m.Results = append(m.Results, t.Clone())
			}
		}
	}

	if doc != nil {
		for _, comment := range doc.List {
			if !annotations.IsMarker(comment.Text) {
				continue
			}
			pos := p.fileSet.Position(comment.Pos())
			marker, err := p.markers.Parse(comment.Text, errors.SourceLocation{
				File:   fileName,
				Line:   pos.Line,
				Column: pos.Column,
			})
			if err != nil {
				return m, err
			}
			m.Dispatchable = true
			m.Verb = marker.Verb
			m.Route = marker.Route
		}
	}

	return m, nil
}

// typeExprFrom converts a syntactic Go type expression into the recursive
// TypeExpression model. Structural types map to reserved node names; anything
// beyond the supported shapes keeps its printed spelling as an opaque leaf.
func typeExprFrom(expr ast.Expr) models.TypeExpression {
	switch e := expr.(type) {
	case *ast.Ident:
		return models.NamedType(e.Name)
	case *ast.SelectorExpr:
		return models.NamedType(types.ExprString(e))
	case *ast.StarExpr:
		return models.GenericType(models.PointerNode, typeExprFrom(e.X))
	case *ast.ArrayType:
		if e.Len == nil {
			return models.GenericType(models.SliceNode, typeExprFrom(e.Elt))
		}
		return models.NamedType(types.ExprString(expr))
	case *ast.MapType:
		return models.GenericType(models.MapNode, typeExprFrom(e.Key), typeExprFrom(e.Value))
	case *ast.Ellipsis:
		return models.GenericType(models.VariadicNode, typeExprFrom(e.Elt))
	case *ast.IndexExpr:
		return models.GenericType(types.ExprString(e.X), typeExprFrom(e.Index))
	case *ast.IndexListExpr:
		args := make([]models.TypeExpression, len(e.Indices))
		for i, idx := range e.Indices {
			args[i] = typeExprFrom(idx)
		}
		return models.TypeExpression{Name: types.ExprString(e.X), Children: args}
	default:
		return models.NamedType(types.ExprString(expr))
	}
}

// collectWarnings notes exported methods without a dispatch marker on
// interfaces that carry at least one marker of their own. Such methods are
// silently excluded from generation, which is usually an oversight worth
// surfacing.
func collectWarnings(metadata *models.PackageMetadata) {
	for _, iface := range metadata.Interfaces {
		marked := false
		for _, m := range iface.Methods {
			if m.Dispatchable {
				marked = true
				break
			}
		}
		if !marked {
			continue
		}
		for _, m := range iface.Methods {
			if !m.Dispatchable && ast.IsExported(m.Name) {
				metadata.Warnings = append(metadata.Warnings, fmt.Sprintf(
					"%s: %s.%s has no dispatch marker and will not be proxied",
					iface.FileName, iface.Name, m.Name))
			}
		}
	}
}

func sortedKeys(files map[string]*ast.File) []string {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
