package models

import "fmt"

// TypeParam is a declared generic parameter. The constraint is opaque text
// carried through for the renderer; the flattening engine only looks at names.
type TypeParam struct {
	Name       string
	Constraint string
}

// Argument is a single method argument.
type Argument struct {
	Name string
	Type TypeExpression
}

// MethodDeclaration represents one method of an interface. Owner records which
// interface syntactically declared the method and survives copying into a
// descendant's merged list, so the renderer can qualify generated calls.
type MethodDeclaration struct {
	Name       string
	Owner      string
	TypeParams []string // method-level generic parameter names
	Params     []Argument
	Results    []TypeExpression

	// Dispatch marker, set by extraction when the method carries a
	// recognized //relay:: annotation with a single route argument.
	Dispatchable bool
	Verb         string // canonical verb (GET, POST, ...)
	Route        string // route template from the marker
}

// DedupKey identifies a declared member for de-duplication across inheritance
// levels: name and generic arity. Argument types are deliberately not part of
// the key, and neither is Owner: an interface's own method suppresses a
// same-named inherited one even though their owners differ. Owner is
// provenance for the renderer, not identity.
func (m MethodDeclaration) DedupKey() string {
	return fmt.Sprintf("%d/%s", len(m.TypeParams), m.Name)
}

// Clone returns a deep copy of the method, including all type trees.
func (m MethodDeclaration) Clone() MethodDeclaration {
	out := m
	out.TypeParams = append([]string(nil), m.TypeParams...)
	out.Params = make([]Argument, len(m.Params))
	for i, p := range m.Params {
		out.Params[i] = Argument{Name: p.Name, Type: p.Type.Clone()}
	}
	out.Results = make([]TypeExpression, len(m.Results))
	for i, r := range m.Results {
		out.Results[i] = r.Clone()
	}
	return out
}

// BaseReference is a named link from an interface to one it embeds, with the
// type arguments supplied at the embedding site.
type BaseReference struct {
	Target   string
	TypeArgs []TypeExpression
}

// Arity returns the number of type arguments at the reference site.
func (b BaseReference) Arity() int {
	return len(b.TypeArgs)
}

// InterfaceDeclaration represents one extracted interface.
type InterfaceDeclaration struct {
	Name       string
	TypeParams []TypeParam
	Bases      []BaseReference
	Methods    []MethodDeclaration // own methods, each with Owner == Name

	// Pass-through naming metadata for the renderer, not used by flattening.
	PackageName string
	FileName    string
	Suffix      string // generated type suffix, e.g. "Client"
}

// Arity returns the interface's declared generic-parameter count.
func (d InterfaceDeclaration) Arity() int {
	return len(d.TypeParams)
}

// ParamNames returns the declared generic-parameter names in order.
func (d InterfaceDeclaration) ParamNames() []string {
	names := make([]string, len(d.TypeParams))
	for i, p := range d.TypeParams {
		names[i] = p.Name
	}
	return names
}

// FlattenedInterface is the derived artifact handed to the renderer: the
// declaration plus its merged method inventory. Own methods come first in
// declaration order, followed by inherited methods in base-reference-then-
// recursive order; the renderer depends on this for deterministic output.
type FlattenedInterface struct {
	InterfaceDeclaration
	MergedMethods []MethodDeclaration
}

// DispatchMethods returns the merged methods that carry a dispatch marker.
func (f FlattenedInterface) DispatchMethods() []MethodDeclaration {
	var out []MethodDeclaration
	for _, m := range f.MergedMethods {
		if m.Dispatchable {
			out = append(out, m)
		}
	}
	return out
}

// PackageMetadata is the extraction result for a single package.
type PackageMetadata struct {
	PackageName string
	PackagePath string
	Interfaces  []InterfaceDeclaration

	// Warnings holds non-fatal extraction notes, e.g. exported methods on a
	// marked interface that carry no dispatch marker
	Warnings []string
}
