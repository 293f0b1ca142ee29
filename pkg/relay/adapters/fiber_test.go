package adapters

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/relay/pkg/relay"
)

func TestFiberAdapter_PathParams(t *testing.T) {
	handler := func(ctx context.Context, call *relay.Call) (any, error) {
		return map[string]string{"id": call.PathParams["id"]}, nil
	}

	adapter := NewDefaultFiberAdapter()
	adapter.Mount(boundRegistry(t, handler))

	resp, err := adapter.App().Test(httptest.NewRequest(http.MethodGet, "/users/42", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"42"}`, string(body))
}

func TestFiberAdapter_DecodesBody(t *testing.T) {
	handler := func(ctx context.Context, call *relay.Call) (any, error) {
		var in map[string]string
		require.NoError(t, call.DecodeBody(&in))
		return in, nil
	}

	adapter := NewDefaultFiberAdapter()
	adapter.Mount(boundRegistry(t, handler))

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"amy"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := adapter.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"amy"}`, string(body))
}

func TestFiberAdapter_HTTPErrorStatus(t *testing.T) {
	handler := func(ctx context.Context, call *relay.Call) (any, error) {
		return nil, relay.ErrConflict("already exists")
	}

	adapter := NewDefaultFiberAdapter()
	adapter.Mount(boundRegistry(t, handler))

	resp, err := adapter.App().Test(httptest.NewRequest(http.MethodGet, "/users/42", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestFiberPathFor(t *testing.T) {
	assert.Equal(t, "/users/:id", fiberPathFor("/users/{id}"))
	assert.Equal(t, "/files/*", fiberPathFor("/files/{*}"))
}
