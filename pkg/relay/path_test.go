package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_Parts(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want []PathPart
	}{
		{
			name: "static only",
			path: "/users",
			want: []PathPart{{Type: StaticPart, Value: "/users"}},
		},
		{
			name: "single parameter",
			path: "/users/{id}",
			want: []PathPart{
				{Type: StaticPart, Value: "/users/"},
				{Type: ParameterPart, Value: "id"},
			},
		},
		{
			name: "multiple parameters",
			path: "/orgs/{org}/repos/{repo}",
			want: []PathPart{
				{Type: StaticPart, Value: "/orgs/"},
				{Type: ParameterPart, Value: "org"},
				{Type: StaticPart, Value: "/repos/"},
				{Type: ParameterPart, Value: "repo"},
			},
		},
		{
			name: "wildcard suffix",
			path: "/files/{*}",
			want: []PathPart{
				{Type: StaticPart, Value: "/files/"},
				{Type: WildcardPart, Value: "*"},
			},
		},
		{
			name: "unclosed brace treated as static",
			path: "/users/{id",
			want: []PathPart{
				{Type: StaticPart, Value: "/users/"},
				{Type: StaticPart, Value: "{"},
				{Type: StaticPart, Value: "id"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.Parts())
		})
	}
}

func TestPath_ParamNames(t *testing.T) {
	path := Path("/orgs/{org}/repos/{repo}/files/{*}")
	assert.Equal(t, []string{"org", "repo"}, path.ParamNames())
	assert.True(t, path.HasParam("org"))
	assert.False(t, path.HasParam("*"))
	assert.False(t, path.HasParam("missing"))
}

func TestPath_Render(t *testing.T) {
	path := Path("/orgs/{org}/repos/{repo}")

	rendered, err := path.Render(map[string]string{"org": "toyz", "repo": "relay"})
	require.NoError(t, err)
	assert.Equal(t, "/orgs/toyz/repos/relay", rendered)

	_, err = path.Render(map[string]string{"org": "toyz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{repo}")
}

func TestPath_RenderWildcard(t *testing.T) {
	path := Path("/files/{*}")

	rendered, err := path.Render(map[string]string{"*": "a/b/c.txt"})
	require.NoError(t, err)
	assert.Equal(t, "/files/a/b/c.txt", rendered)

	rendered, err = path.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "/files/", rendered)
}
