package registry

import (
	"strings"

	"github.com/toyz/relay/internal/utils"
)

// Verb is a canonical dispatch verb carried on a marked method.
type Verb struct {
	Name    string // canonical form, e.g. "GET"
	HasBody bool   // whether requests of this verb carry a body
}

// VerbRegistry maps marker spellings to canonical dispatch verbs. Each verb is
// registered under its bare spelling ("get") and its suffixed spelling
// ("getrequest"); lookups are case-insensitive.
type VerbRegistry struct {
	*utils.BaseRegistry[string, Verb]
}

// NewVerbRegistry creates an empty verb registry
func NewVerbRegistry() *VerbRegistry {
	base := utils.NewBaseRegistry[string, Verb]("verb", "dispatch verb")
	base.SetValidator(utils.ChainValidators(
		utils.NotEmptyKeyValidator[Verb]("dispatch verb spelling"),
		utils.NoDuplicateValidator[string, Verb]("dispatch verb spelling"),
	))
	return &VerbRegistry{BaseRegistry: base}
}

// NewDefaultVerbRegistry creates a registry populated with the built-in verbs
func NewDefaultVerbRegistry() *VerbRegistry {
	r := NewVerbRegistry()
	r.MustRegisterVerb(Verb{Name: "GET", HasBody: false})
	r.MustRegisterVerb(Verb{Name: "POST", HasBody: true})
	r.MustRegisterVerb(Verb{Name: "PUT", HasBody: true})
	r.MustRegisterVerb(Verb{Name: "DELETE", HasBody: false})
	r.MustRegisterVerb(Verb{Name: "PATCH", HasBody: true})
	return r
}

// MustRegisterVerb registers a verb under both accepted spellings, panicking
// on conflict. Only used for the built-in verb set.
func (r *VerbRegistry) MustRegisterVerb(verb Verb) {
	bare := strings.ToLower(verb.Name)
	for _, spelling := range []string{bare, bare + "request"} {
		if err := r.Register(spelling, verb); err != nil {
			panic(err)
		}
	}
}

// Resolve returns the canonical verb for a marker spelling
func (r *VerbRegistry) Resolve(spelling string) (Verb, bool) {
	return r.Get(strings.ToLower(spelling))
}
