package flatten

import (
	"github.com/toyz/relay/internal/errors"
	"github.com/toyz/relay/internal/models"
)

// resolver builds merged method lists bottom-up over the base-reference
// graph. An interface's bases are fully resolved before their methods are
// merged in, so chained substitutions compose in edge order: resolving
// C -> B -> A bakes the B->A substitution into B's merged methods before the
// C->B substitution is applied on top.
//
// Resolution is memoized per (name, arity); the declaration set is immutable
// for the duration of a run, so the cache is always valid.
type resolver struct {
	set      *Set
	merged   map[string][]models.MethodDeclaration
	visiting map[string]bool
}

func newResolver(set *Set) *resolver {
	return &resolver{
		set:      set,
		merged:   make(map[string][]models.MethodDeclaration),
		visiting: make(map[string]bool),
	}
}

// mergedMethods returns the fully specialized merged method list for decl.
// Callers must treat the result as read-only; it is shared with the memo
// cache. The path argument carries interface names along the current
// resolution chain for cycle reporting.
func (r *resolver) mergedMethods(decl *models.InterfaceDeclaration, path []string) ([]models.MethodDeclaration, error) {
	key := setKey(decl.Name, decl.Arity())
	if cached, ok := r.merged[key]; ok {
		return cached, nil
	}
	if r.visiting[key] {
		return nil, errors.NewCyclicInheritanceError(append(path, decl.Name))
	}
	r.visiting[key] = true
	defer delete(r.visiting, key)

	path = append(path, decl.Name)

	// Own methods first, in declared order. They claim their dedup keys
	// before any base is consulted, so they always win a collision.
	methods := cloneMethods(decl.Methods)
	seen := make(map[string]bool, len(methods))
	for _, m := range methods {
		seen[m.DedupKey()] = true
	}

	for _, base := range decl.Bases {
		target := r.set.Lookup(base.Target, base.Arity())
		if target == nil {
			// External interface: assumed non-dispatchable, contributes
			// no methods and no substitution.
			continue
		}

		baseMethods, err := r.mergedMethods(target, path)
		if err != nil {
			return nil, err
		}

		sub := NewSubstitution(target.TypeParams, base.TypeArgs)
		for _, m := range baseMethods {
			// First base edge wins on a dedup-key collision.
			dedup := m.DedupKey()
			if seen[dedup] {
				continue
			}
			seen[dedup] = true
			methods = append(methods, sub.Specialize(m))
		}
	}

	r.merged[key] = methods
	return methods, nil
}
