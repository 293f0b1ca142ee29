package flatten

import "github.com/toyz/relay/internal/models"

// Substitution maps a base interface's generic-parameter names to the type
// arguments supplied at one embedding site.
type Substitution map[string]models.TypeExpression

// NewSubstitution pairs parameters with type arguments positionally. An
// identity binding (the argument's canonical form equals the parameter name,
// as in B[T] embedding A[T]) contributes no rewrite: the descendant is simply
// forwarding a still-open parameter, and mapping it to itself would be a
// vacuous rename. Parameters beyond the shorter list are left unmapped.
func NewSubstitution(params []models.TypeParam, args []models.TypeExpression) Substitution {
	sub := make(Substitution)
	for i, param := range params {
		if i >= len(args) {
			break
		}
		if args[i].String() == param.Name {
			continue
		}
		sub[param.Name] = args[i]
	}
	return sub
}

// Apply rewrites a type expression under the substitution, returning a new
// tree. A node whose name matches a mapped key is replaced wholesale by a
// clone of the mapping's target; otherwise its children are rewritten. The
// input is never mutated.
func (s Substitution) Apply(t models.TypeExpression) models.TypeExpression {
	if replacement, ok := s[t.Name]; ok {
		return replacement.Clone()
	}
	out := models.TypeExpression{Name: t.Name}
	if len(t.Children) > 0 {
		out.Children = make([]models.TypeExpression, len(t.Children))
		for i, child := range t.Children {
			out.Children[i] = s.Apply(child)
		}
	}
	return out
}

// Rename maps a bare method-level generic-parameter name to the canonical
// string form of its binding. Method-level parameters act as their own fresh
// binder at the call site, so they are renamed textually, never replaced by
// an expression tree.
func (s Substitution) Rename(name string) string {
	if replacement, ok := s[name]; ok {
		return replacement.String()
	}
	return name
}

// Specialize returns a deep copy of a method with the substitution applied to
// every argument type, every result type, and the method-level generic
// parameter names. The original is left untouched so the same base method can
// be specialized differently at sibling embedding sites.
func (s Substitution) Specialize(m models.MethodDeclaration) models.MethodDeclaration {
	out := m.Clone()
	for i := range out.TypeParams {
		out.TypeParams[i] = s.Rename(out.TypeParams[i])
	}
	for i := range out.Params {
		out.Params[i].Type = s.Apply(out.Params[i].Type)
	}
	for i := range out.Results {
		out.Results[i] = s.Apply(out.Results[i])
	}
	return out
}
