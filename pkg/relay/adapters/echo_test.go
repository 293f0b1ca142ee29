package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/relay/pkg/relay"
)

func boundRegistry(t *testing.T, handler relay.HandlerFunc) relay.RouteRegistry {
	t.Helper()
	r := relay.NewInMemoryRouteRegistry()
	r.RegisterRoute(relay.RouteInfo{
		Verb: "GET", Path: "/users/{id}",
		InterfaceName: "UserService", MethodName: "GetUser", PackageName: "users",
	})
	r.RegisterRoute(relay.RouteInfo{
		Verb: "POST", Path: "/users",
		InterfaceName: "UserService", MethodName: "CreateUser", PackageName: "users",
		HasBody: true,
	})
	require.NoError(t, r.Bind("UserService.GetUser", handler))
	require.NoError(t, r.Bind("UserService.CreateUser", handler))
	return r
}

func TestEchoAdapter_PathParams(t *testing.T) {
	handler := func(ctx context.Context, call *relay.Call) (any, error) {
		return map[string]string{"id": call.PathParams["id"]}, nil
	}

	adapter := NewDefaultEchoAdapter()
	adapter.Mount(boundRegistry(t, handler))

	rec := httptest.NewRecorder()
	adapter.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"42"}`, rec.Body.String())
}

func TestEchoAdapter_DecodesBody(t *testing.T) {
	handler := func(ctx context.Context, call *relay.Call) (any, error) {
		var in map[string]string
		require.NoError(t, call.DecodeBody(&in))
		return in, nil
	}

	adapter := NewDefaultEchoAdapter()
	adapter.Mount(boundRegistry(t, handler))

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"amy"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	adapter.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"amy"}`, rec.Body.String())
}

func TestEchoAdapter_HTTPErrorStatus(t *testing.T) {
	handler := func(ctx context.Context, call *relay.Call) (any, error) {
		return nil, relay.ErrNotFound("no such user")
	}

	adapter := NewDefaultEchoAdapter()
	adapter.Mount(boundRegistry(t, handler))

	rec := httptest.NewRecorder()
	adapter.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/0", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body relay.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no such user", body.Message)
}

func TestEchoAdapter_NilResultIsNoContent(t *testing.T) {
	handler := func(ctx context.Context, call *relay.Call) (any, error) {
		return nil, nil
	}

	adapter := NewDefaultEchoAdapter()
	adapter.Mount(boundRegistry(t, handler))

	rec := httptest.NewRecorder()
	adapter.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/42", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEchoPathFor(t *testing.T) {
	assert.Equal(t, "/users/:id", echoPathFor("/users/{id}"))
	assert.Equal(t, "/files/*", echoPathFor("/files/{*}"))
	assert.Equal(t, "/ping", echoPathFor("/ping"))
}
