package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/relay/internal/flatten"
	"github.com/toyz/relay/internal/models"
)

func TestParseSource_BasicInterface(t *testing.T) {
	source := `package users

import "context"

type UserService interface {
	//relay::get "/users/{id}"
	GetUser(ctx context.Context, id string) (User, error)

	//relay::post "/users"
	CreateUser(ctx context.Context, user User) (User, error)

	// Close is a plain member without a marker.
	Close() error
}
`

	p := NewParser()
	metadata, err := p.ParseSource("users.go", source)
	require.NoError(t, err)

	require.Len(t, metadata.Interfaces, 1)
	iface := metadata.Interfaces[0]
	assert.Equal(t, "UserService", iface.Name)
	assert.Equal(t, "users", iface.PackageName)
	require.Len(t, iface.Methods, 3)

	get := iface.Methods[0]
	assert.Equal(t, "GetUser", get.Name)
	assert.Equal(t, "UserService", get.Owner)
	assert.True(t, get.Dispatchable)
	assert.Equal(t, "GET", get.Verb)
	assert.Equal(t, "/users/{id}", get.Route)
	require.Len(t, get.Params, 2)
	assert.Equal(t, "context.Context", get.Params[0].Type.String())
	assert.Equal(t, "string", get.Params[1].Type.String())
	require.Len(t, get.Results, 2)
	assert.Equal(t, "User", get.Results[0].String())
	assert.Equal(t, "error", get.Results[1].String())

	create := iface.Methods[1]
	assert.Equal(t, "POST", create.Verb)

	closeMethod := iface.Methods[2]
	assert.False(t, closeMethod.Dispatchable)
}

func TestParseSource_SuffixedVerbSpelling(t *testing.T) {
	source := `package api

type Pinger interface {
	//relay::getrequest "/ping"
	Ping() error
}
`

	p := NewParser()
	metadata, err := p.ParseSource("api.go", source)
	require.NoError(t, err)
	require.Len(t, metadata.Interfaces, 1)
	assert.Equal(t, "GET", metadata.Interfaces[0].Methods[0].Verb)
}

func TestParseSource_MalformedMarkerIsSyntaxError(t *testing.T) {
	source := `package api

type Broken interface {
	//relay::get
	Fetch() error
}
`

	p := NewParser()
	_, err := p.ParseSource("api.go", source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.go:4")
}

func TestParseSource_GenericEmbedding(t *testing.T) {
	source := `package store

type Repository[T any] interface {
	//relay::get "/items/{id}"
	Load(id string) (T, error)

	//relay::put "/items/{id}"
	Store(id string, value T) error
}

type UserRepository interface {
	Repository[User]
}

type KeyedRepository[K comparable, T any] interface {
	//relay::get "/keyed/{key}"
	Fetch(key K) (T, error)
}

type SessionStore interface {
	KeyedRepository[string, Session]
}
`

	p := NewParser()
	metadata, err := p.ParseSource("store.go", source)
	require.NoError(t, err)
	require.Len(t, metadata.Interfaces, 4)

	repo := metadata.Interfaces[0]
	require.Len(t, repo.TypeParams, 1)
	assert.Equal(t, models.TypeParam{Name: "T", Constraint: "any"}, repo.TypeParams[0])

	userRepo := metadata.Interfaces[1]
	require.Len(t, userRepo.Bases, 1)
	assert.Equal(t, "Repository", userRepo.Bases[0].Target)
	require.Len(t, userRepo.Bases[0].TypeArgs, 1)
	assert.Equal(t, "User", userRepo.Bases[0].TypeArgs[0].String())

	keyed := metadata.Interfaces[2]
	require.Len(t, keyed.TypeParams, 2)
	assert.Equal(t, "comparable", keyed.TypeParams[0].Constraint)

	sessions := metadata.Interfaces[3]
	require.Len(t, sessions.Bases, 1)
	require.Len(t, sessions.Bases[0].TypeArgs, 2)
	assert.Equal(t, "string", sessions.Bases[0].TypeArgs[0].String())
	assert.Equal(t, "Session", sessions.Bases[0].TypeArgs[1].String())
}

func TestParseSource_StructuralTypes(t *testing.T) {
	source := `package api

type Catalog interface {
	//relay::post "/bulk"
	BulkStore(items []*Item, tags map[string][]string, extra ...string) error
}
`

	p := NewParser()
	metadata, err := p.ParseSource("api.go", source)
	require.NoError(t, err)

	m := metadata.Interfaces[0].Methods[0]
	require.Len(t, m.Params, 3)
	assert.Equal(t, "[]*Item", m.Params[0].Type.String())
	assert.Equal(t, "map[string][]string", m.Params[1].Type.String())
	assert.Equal(t, "...string", m.Params[2].Type.String())
}

func TestParseSource_UnnamedArgumentsGetStableNames(t *testing.T) {
	source := `package api

type Lookup interface {
	//relay::get "/lookup"
	Find(string, int) (string, error)
}
`

	p := NewParser()
	metadata, err := p.ParseSource("api.go", source)
	require.NoError(t, err)

	m := metadata.Interfaces[0].Methods[0]
	require.Len(t, m.Params, 2)
	assert.Equal(t, "arg0", m.Params[0].Name)
	assert.Equal(t, "arg1", m.Params[1].Name)
}

// The extracted model feeds straight into flattening; verify the full
// pipeline over real source.
func TestParseSource_FlattensEndToEnd(t *testing.T) {
	source := `package store

type Repository[T any] interface {
	//relay::get "/items/{id}"
	Load(id string) (T, error)
}

type Versioned[T any] interface {
	Repository[T]

	//relay::get "/items/{id}/versions"
	Versions(id string) ([]T, error)
}

type DocumentStore interface {
	Versioned[Document]
}
`

	p := NewParser()
	metadata, err := p.ParseSource("store.go", source)
	require.NoError(t, err)

	result, err := flatten.Flatten(metadata.Interfaces)
	require.NoError(t, err)

	var docStore *models.FlattenedInterface
	for i := range result {
		if result[i].Name == "DocumentStore" {
			docStore = &result[i]
		}
	}
	require.NotNil(t, docStore)
	require.Len(t, docStore.MergedMethods, 2)

	assert.Equal(t, "Versions", docStore.MergedMethods[0].Name)
	assert.Equal(t, "Versioned", docStore.MergedMethods[0].Owner)
	assert.Equal(t, "[]Document", docStore.MergedMethods[0].Results[0].String())

	assert.Equal(t, "Load", docStore.MergedMethods[1].Name)
	assert.Equal(t, "Repository", docStore.MergedMethods[1].Owner)
	assert.Equal(t, "Document", docStore.MergedMethods[1].Results[0].String())
}

func TestParseSource_WarnsOnUnmarkedExportedMethods(t *testing.T) {
	source := `package users

import "context"

type UserService interface {
	//relay::get "/users/{id}"
	GetUser(ctx context.Context, id string) (User, error)

	Close() error

	refresh() error
}

type Plain interface {
	Ping() error
}
`

	p := NewParser()
	metadata, err := p.ParseSource("users.go", source)
	require.NoError(t, err)

	// Only the exported unmarked method of the marked interface is flagged;
	// unexported methods and unmarked interfaces stay quiet.
	require.Len(t, metadata.Warnings, 1)
	assert.Contains(t, metadata.Warnings[0], "UserService.Close")
	assert.Contains(t, metadata.Warnings[0], "users.go")
}
