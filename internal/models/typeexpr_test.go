package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeExpression_String(t *testing.T) {
	tests := []struct {
		name string
		expr TypeExpression
		want string
	}{
		{"plain", NamedType("int"), "int"},
		{"qualified", NamedType("uuid.UUID"), "uuid.UUID"},
		{"generic", GenericType("Result", NamedType("int")), "Result[int]"},
		{"nested generic", GenericType("Pair", NamedType("K"), GenericType("List", NamedType("V"))), "Pair[K, List[V]]"},
		{"pointer", GenericType(PointerNode, NamedType("User")), "*User"},
		{"slice", GenericType(SliceNode, NamedType("string")), "[]string"},
		{"slice of pointer", GenericType(SliceNode, GenericType(PointerNode, NamedType("User"))), "[]*User"},
		{"map", GenericType(MapNode, NamedType("string"), NamedType("int")), "map[string]int"},
		{"variadic", GenericType(VariadicNode, NamedType("string")), "...string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestTypeExpression_CloneIsDeep(t *testing.T) {
	original := GenericType("Outer", GenericType("Inner", NamedType("T")))
	copied := original.Clone()

	copied.Children[0].Children[0].Name = "changed"
	assert.Equal(t, "T", original.Children[0].Children[0].Name)
	assert.Equal(t, "Outer[Inner[changed]]", copied.String())
}

func TestTypeExpression_Equal(t *testing.T) {
	a := GenericType("Result", NamedType("int"))
	b := GenericType("Result", NamedType("int"))
	c := GenericType("Result", NamedType("string"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestMethodDeclaration_DedupKey(t *testing.T) {
	a := MethodDeclaration{Name: "Foo", Owner: "A"}
	b := MethodDeclaration{Name: "Foo", Owner: "B"}
	generic := MethodDeclaration{Name: "Foo", Owner: "A", TypeParams: []string{"T"}}

	assert.Equal(t, a.DedupKey(), b.DedupKey(), "owner is provenance, not identity")
	assert.NotEqual(t, a.DedupKey(), generic.DedupKey(), "generic arity distinguishes members")
}

func TestMethodDeclaration_CloneIsDeep(t *testing.T) {
	m := MethodDeclaration{
		Name:    "Get",
		Owner:   "A",
		Params:  []Argument{{Name: "x", Type: NamedType("T")}},
		Results: []TypeExpression{GenericType(SliceNode, NamedType("T"))},
	}

	copied := m.Clone()
	copied.Params[0].Type.Name = "changed"
	copied.Results[0].Children[0].Name = "changed"

	assert.Equal(t, "T", m.Params[0].Type.Name)
	assert.Equal(t, "[]T", m.Results[0].String())
}
