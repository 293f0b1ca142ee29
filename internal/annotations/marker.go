// Package annotations parses relay dispatch markers from doc comments.
//
// A marker decorates an interface method and names the request it produces:
//
//	//relay::get "/users/{id}"
//
// The verb is one of a small fixed set, accepted bare ("get") or suffixed
// ("getrequest"), and must be followed by exactly one double-quoted route
// argument.
package annotations

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/relay/internal/errors"
	"github.com/toyz/relay/internal/registry"
)

// ParsedMarker is the result of parsing one dispatch marker comment.
type ParsedMarker struct {
	Verb     string // canonical verb, e.g. "GET"
	HasBody  bool   // whether the verb carries a request body
	Route    string // unquoted route template
	Raw      string // original comment text
	Location errors.SourceLocation
}

// markerGrammar is the participle grammar for a marker line.
type markerGrammar struct {
	Comment   string `parser:"@Comment"`
	Relay     string `parser:"@Relay"`
	Separator string `parser:"@Separator"`
	Verb      string `parser:"@Ident"`
	Route     string `parser:"@String"`
}

// MarkerParser parses dispatch marker comments.
type MarkerParser struct {
	parser *participle.Parser[markerGrammar]
	verbs  *registry.VerbRegistry
}

// NewMarkerParser creates a marker parser backed by the given verb registry.
func NewMarkerParser(verbs *registry.VerbRegistry) *MarkerParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Relay", Pattern: `relay`},
		{Name: "Separator", Pattern: `::`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[markerGrammar](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
	)

	return &MarkerParser{
		parser: parser,
		verbs:  verbs,
	}
}

// NewDefaultMarkerParser creates a marker parser with the built-in verb set.
func NewDefaultMarkerParser() *MarkerParser {
	return NewMarkerParser(registry.NewDefaultVerbRegistry())
}

// IsMarker reports whether a comment line looks like a relay marker. It is a
// cheap pre-filter; Parse still validates the full structure.
func IsMarker(comment string) bool {
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	return strings.HasPrefix(text, "relay::")
}

// Parse parses a single marker comment. The comment must consist of the
// marker and nothing else; trailing tokens are a syntax error.
func (p *MarkerParser) Parse(comment string, loc errors.SourceLocation) (*ParsedMarker, error) {
	parsed, err := p.parser.ParseString(loc.File, strings.TrimSpace(comment))
	if err != nil {
		return nil, errors.NewSyntaxError(
			fmt.Sprintf("malformed dispatch marker: %v", err), loc).
			WithSuggestion(`Use format: //relay::<verb> "<route>"`)
	}

	verb, ok := p.verbs.Resolve(parsed.Verb)
	if !ok {
		return nil, errors.NewSyntaxError(
			fmt.Sprintf("unknown dispatch verb '%s'", parsed.Verb), loc).
			WithSuggestion("Use one of: " + strings.Join(p.spellings(), ", "))
	}

	route, err := unquote(parsed.Route)
	if err != nil {
		return nil, errors.NewSyntaxError(
			fmt.Sprintf("invalid route argument %s", parsed.Route), loc)
	}
	if route == "" {
		return nil, errors.NewSyntaxError("route argument must not be empty", loc).
			WithSuggestion(`Provide a route template, e.g. "/users/{id}"`)
	}

	return &ParsedMarker{
		Verb:     verb.Name,
		HasBody:  verb.HasBody,
		Route:    route,
		Raw:      comment,
		Location: loc,
	}, nil
}

// spellings returns the accepted verb spellings, sorted for stable messages.
func (p *MarkerParser) spellings() []string {
	keys := p.verbs.List()
	sort.Strings(keys)
	return keys
}

func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("route must be a double-quoted string")
	}
	inner := s[1 : len(s)-1]
	return strings.ReplaceAll(inner, `\"`, `"`), nil
}
