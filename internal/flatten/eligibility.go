package flatten

import "github.com/toyz/relay/internal/models"

// eligibility decides which interfaces are generation candidates: an
// interface qualifies iff at least one dispatch-marked method is reachable
// through its base-reference closure. The predicate is pure over the set and
// memoized per interface.
type eligibility struct {
	set  *Set
	memo map[string]bool
}

func newEligibility(set *Set) *eligibility {
	return &eligibility{
		set:  set,
		memo: make(map[string]bool),
	}
}

func (e *eligibility) isEligible(decl *models.InterfaceDeclaration) bool {
	key := setKey(decl.Name, decl.Arity())
	if v, ok := e.memo[key]; ok {
		return v
	}
	// Seed false before recursing so a cyclic reference terminates instead
	// of looping; the final answer overwrites the seed.
	e.memo[key] = false

	result := false
	for _, m := range decl.Methods {
		if m.Dispatchable {
			result = true
			break
		}
	}
	if !result {
		for _, base := range decl.Bases {
			// Unresolved targets are leaves: external interfaces are
			// assumed non-dispatchable.
			target := e.set.Lookup(base.Target, base.Arity())
			if target != nil && e.isEligible(target) {
				result = true
				break
			}
		}
	}

	e.memo[key] = result
	return result
}
