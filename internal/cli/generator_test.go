package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/relay/internal/utils"
)

const userSource = `package users

import "context"

type User struct {
	ID   string
	Name string
}

type UserService interface {
	//relay::get "/users/{id}"
	GetUser(ctx context.Context, id string) (User, error)

	//relay::post "/users"
	CreateUser(ctx context.Context, user User) (User, error)
}
`

func writeSource(t *testing.T, dir, name, source string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))
	return path
}

func TestRunner_GeneratesProxyFile(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "users")
	writeSource(t, pkgDir, "user.go", userSource)

	runner := NewRunner(utils.NewQuietDiagnostics())
	err := runner.Run(Config{
		Patterns:   []string{root + "/..."},
		ModuleName: "example.com/app",
	})
	require.NoError(t, err)

	generated := filepath.Join(pkgDir, "relay_gen.go")
	content, err := os.ReadFile(generated)
	require.NoError(t, err)

	assert.Contains(t, string(content), "// Code generated by relay. DO NOT EDIT.")
	assert.Contains(t, string(content), "type UserServiceClient struct {")
	assert.Contains(t, string(content), `req := relay.NewRequest("GET", "/users/{id}")`)

	summary := runner.Summary()
	assert.Equal(t, 1, summary.ProxiesGenerated)
	assert.Equal(t, 2, summary.RoutesRegistered)
	assert.Equal(t, []string{generated}, summary.FilesWritten)
}

func TestRunner_SuffixOverride(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "users")
	writeSource(t, pkgDir, "user.go", userSource)

	runner := NewRunner(utils.NewQuietDiagnostics())
	err := runner.Run(Config{
		Patterns:   []string{pkgDir},
		ModuleName: "example.com/app",
		Suffix:     "Proxy",
	})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(pkgDir, "relay_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "type UserServiceProxy struct {")
}

func TestRunner_SkipsPackagesWithoutMarkers(t *testing.T) {
	root := t.TempDir()
	writeSource(t, filepath.Join(root, "plain"), "plain.go", "package plain\n\ntype Plain interface {\n\tClose() error\n}\n")

	runner := NewRunner(utils.NewQuietDiagnostics())
	err := runner.Run(Config{
		Patterns:   []string{root + "/..."},
		ModuleName: "example.com/app",
	})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(root, "plain", "relay_gen.go"))
	assert.Empty(t, runner.Summary().FilesWritten)
}

func TestRunner_CleanRemovesGeneratedFiles(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "users")
	writeSource(t, pkgDir, "user.go", userSource)
	generated := writeSource(t, pkgDir, "relay_gen.go", "package users\n")

	runner := NewRunner(utils.NewQuietDiagnostics())
	err := runner.Run(Config{
		Patterns: []string{root + "/..."},
		Clean:    true,
	})
	require.NoError(t, err)

	assert.NoFileExists(t, generated)
	assert.FileExists(t, filepath.Join(pkgDir, "user.go"))
	assert.Equal(t, 1, runner.Summary().FilesCleaned)
}

func TestRunner_NoPackagesIsError(t *testing.T) {
	runner := NewRunner(utils.NewQuietDiagnostics())
	err := runner.Run(Config{
		Patterns:   []string{t.TempDir()},
		ModuleName: "example.com/app",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Go packages")
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{Patterns: []string{"."}, Verbose: true, Quiet: true}.Validate())
	assert.NoError(t, Config{Patterns: []string{"./..."}}.Validate())
}
