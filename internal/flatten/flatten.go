// Package flatten implements the interface contract flattening and generic
// specialization engine. Given the extracted declaration set, it resolves
// multi-level embedding into a single merged method list per interface,
// substituting generic type-parameter bindings along every embedding edge.
//
// The engine is purely syntactic: types are matched by canonical name, never
// semantically resolved. Input declarations are treated as read-only; all
// output structures are freshly allocated.
package flatten

import (
	"fmt"

	"github.com/toyz/relay/internal/models"
)

// Set is the read-only declaration set for one generation run. Interfaces are
// indexed by (name, arity); when two declarations collide on that key the
// first one wins, which keeps resolution deterministic.
type Set struct {
	interfaces []models.InterfaceDeclaration
	index      map[string]*models.InterfaceDeclaration
}

// NewSet builds an indexed declaration set.
func NewSet(decls []models.InterfaceDeclaration) *Set {
	s := &Set{
		interfaces: decls,
		index:      make(map[string]*models.InterfaceDeclaration, len(decls)),
	}
	for i := range s.interfaces {
		d := &s.interfaces[i]
		key := setKey(d.Name, d.Arity())
		if _, exists := s.index[key]; !exists {
			s.index[key] = d
		}
	}
	return s
}

// Lookup resolves an interface by name and generic arity. A miss means the
// target is external to the set and contributes nothing to flattening.
func (s *Set) Lookup(name string, arity int) *models.InterfaceDeclaration {
	return s.index[setKey(name, arity)]
}

// Interfaces returns the declarations in their original order.
func (s *Set) Interfaces() []models.InterfaceDeclaration {
	return s.interfaces
}

func setKey(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}

// Flatten produces the flattened view of every eligible interface in the set,
// in declaration order. Each result carries the interface's own methods first,
// in declared order, followed by inherited methods in base-reference-then-
// recursive order, fully specialized and de-duplicated.
//
// An inheritance cycle is the only fatal condition; every other irregularity
// (unresolved bases, arity mismatches, duplicate members) degrades locally.
func Flatten(decls []models.InterfaceDeclaration) ([]models.FlattenedInterface, error) {
	return FlattenSet(NewSet(decls))
}

// FlattenSet is Flatten over a pre-built declaration set.
func FlattenSet(set *Set) ([]models.FlattenedInterface, error) {
	eligible := newEligibility(set)
	resolver := newResolver(set)

	var out []models.FlattenedInterface
	for i := range set.interfaces {
		decl := &set.interfaces[i]
		if !eligible.isEligible(decl) {
			continue
		}

		merged, err := resolver.mergedMethods(decl, nil)
		if err != nil {
			return nil, err
		}

		out = append(out, models.FlattenedInterface{
			InterfaceDeclaration: *decl,
			MergedMethods:        cloneMethods(merged),
		})
	}
	return out, nil
}

// cloneMethods deep-copies a method list so output never aliases the
// resolver's memoized state.
func cloneMethods(methods []models.MethodDeclaration) []models.MethodDeclaration {
	out := make([]models.MethodDeclaration, len(methods))
	for i, m := range methods {
		out[i] = m.Clone()
	}
	return out
}
