package models

import "strings"

// Reserved node names for structural Go types. These can never collide with a
// generic parameter name, so name-based substitution skips over them naturally.
const (
	PointerNode  = "*"
	SliceNode    = "[]"
	MapNode      = "map"
	VariadicNode = "..."
)

// TypeExpression is a recursive, syntactic representation of a (possibly
// generic) type reference. It carries no semantic binding: two expressions are
// the same type exactly when their canonical string forms match.
//
// Expressions are treated as immutable once extracted. Specialization always
// works on clones because the same base-method expression may be substituted
// differently at multiple inheritance sites.
type TypeExpression struct {
	Name     string           // type name, or a reserved structural node name
	Children []TypeExpression // type arguments, empty for non-generic types
}

// NamedType creates a leaf type expression.
func NamedType(name string) TypeExpression {
	return TypeExpression{Name: name}
}

// GenericType creates a type expression with type arguments.
func GenericType(name string, args ...TypeExpression) TypeExpression {
	return TypeExpression{Name: name, Children: args}
}

// Clone returns a deep copy of the expression tree.
func (t TypeExpression) Clone() TypeExpression {
	if len(t.Children) == 0 {
		return TypeExpression{Name: t.Name}
	}
	children := make([]TypeExpression, len(t.Children))
	for i, child := range t.Children {
		children[i] = child.Clone()
	}
	return TypeExpression{Name: t.Name, Children: children}
}

// Equal reports whether two expressions have the same canonical form.
func (t TypeExpression) Equal(other TypeExpression) bool {
	return t.String() == other.String()
}

// IsZero reports whether the expression is the empty placeholder.
func (t TypeExpression) IsZero() bool {
	return t.Name == "" && len(t.Children) == 0
}

// String renders the canonical Go spelling of the expression. This form is the
// identity used for name-based matching throughout flattening.
func (t TypeExpression) String() string {
	switch t.Name {
	case PointerNode:
		if len(t.Children) == 1 {
			return "*" + t.Children[0].String()
		}
	case SliceNode:
		if len(t.Children) == 1 {
			return "[]" + t.Children[0].String()
		}
	case VariadicNode:
		if len(t.Children) == 1 {
			return "..." + t.Children[0].String()
		}
	case MapNode:
		if len(t.Children) == 2 {
			return "map[" + t.Children[0].String() + "]" + t.Children[1].String()
		}
	}

	if len(t.Children) == 0 {
		return t.Name
	}

	var sb strings.Builder
	sb.WriteString(t.Name)
	sb.WriteByte('[')
	for i, child := range t.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(child.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
