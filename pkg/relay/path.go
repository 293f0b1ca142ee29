package relay

import (
	"fmt"
	"strings"
)

// PathPartType represents the type of path part
type PathPartType int

const (
	StaticPart PathPartType = iota
	ParameterPart
	WildcardPart
)

// PathPart represents a single part of a relay path
type PathPart struct {
	Type  PathPartType
	Value string // For static parts: the literal text, for parameters: the parameter name
}

// Path represents a route template in relay format. Parameters are written as
// {name} segments; {*} matches any trailing suffix.
type Path string

// NewPath creates a new Path from a string
func NewPath(path string) Path {
	return Path(path)
}

// Raw returns the original path template
func (p Path) Raw() string {
	return string(p)
}

// Parts parses the template and returns the individual parts
func (p Path) Parts() []PathPart {
	path := string(p)
	var parts []PathPart

	i := 0
	for i < len(path) {
		if path[i] == '{' {
			// Find the closing brace
			j := i + 1
			for j < len(path) && path[j] != '}' {
				j++
			}
			if j < len(path) {
				name := path[i+1 : j]
				if name == "*" {
					parts = append(parts, PathPart{Type: WildcardPart, Value: "*"})
				} else {
					parts = append(parts, PathPart{Type: ParameterPart, Value: name})
				}
				i = j + 1
			} else {
				// Malformed, treat as static
				parts = append(parts, PathPart{Type: StaticPart, Value: string(path[i])})
				i++
			}
		} else {
			// Static part - collect consecutive static characters
			start := i
			for i < len(path) && path[i] != '{' {
				i++
			}
			parts = append(parts, PathPart{Type: StaticPart, Value: path[start:i]})
		}
	}

	return parts
}

// ParamNames returns the parameter names in template order, excluding wildcards
func (p Path) ParamNames() []string {
	var names []string
	for _, part := range p.Parts() {
		if part.Type == ParameterPart {
			names = append(names, part.Value)
		}
	}
	return names
}

// HasParam reports whether the template contains the named parameter
func (p Path) HasParam(name string) bool {
	for _, part := range p.Parts() {
		if part.Type == ParameterPart && part.Value == name {
			return true
		}
	}
	return false
}

// Render substitutes parameter values into the template. Every parameter in
// the template must have a value; wildcard segments render as the value bound
// under "*", or empty when unbound.
func (p Path) Render(params map[string]string) (string, error) {
	var out strings.Builder
	for _, part := range p.Parts() {
		switch part.Type {
		case StaticPart:
			out.WriteString(part.Value)
		case ParameterPart:
			value, ok := params[part.Value]
			if !ok {
				return "", fmt.Errorf("path %q: missing value for parameter {%s}", p.Raw(), part.Value)
			}
			out.WriteString(value)
		case WildcardPart:
			out.WriteString(params["*"])
		}
	}
	return out.String(), nil
}
