package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRequest_URL(t *testing.T) {
	req := NewRequest("GET", "/users/{id}").
		WithPathParam("id", "42").
		WithQuery("expand", "profile")

	url, err := req.URL()
	require.NoError(t, err)
	assert.Equal(t, "/users/42?expand=profile", url)
}

func TestRequest_FreshIDs(t *testing.T) {
	a := NewRequest("GET", "/ping")
	b := NewRequest("GET", "/ping")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestHTTPDispatcher_GetDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/42", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		_ = json.NewEncoder(w).Encode(testUser{ID: "42", Name: "amy"})
	}))
	defer server.Close()

	d := NewHTTPDispatcher(server.URL)
	req := NewRequest("GET", "/users/{id}").WithPathParam("id", "42")

	var out testUser
	require.NoError(t, d.Dispatch(context.Background(), req, &out))
	assert.Equal(t, testUser{ID: "42", Name: "amy"}, out)
}

func TestHTTPDispatcher_PostSendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in testUser
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "amy", in.Name)

		in.ID = "43"
		_ = json.NewEncoder(w).Encode(in)
	}))
	defer server.Close()

	d := NewHTTPDispatcher(server.URL)
	req := NewRequest("POST", "/users").WithBody(testUser{Name: "amy"})

	var out testUser
	require.NoError(t, d.Dispatch(context.Background(), req, &out))
	assert.Equal(t, "43", out.ID)
}

func TestHTTPDispatcher_NonSuccessIsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such user", http.StatusNotFound)
	}))
	defer server.Close()

	d := NewHTTPDispatcher(server.URL)
	req := NewRequest("GET", "/users/{id}").WithPathParam("id", "0")

	err := d.Dispatch(context.Background(), req, nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "no such user", httpErr.Message)
	assert.Equal(t, req.ID.String(), httpErr.RequestID)
}

func TestHTTPDispatcher_DefaultHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	d := NewHTTPDispatcher(server.URL, WithDefaultHeader("Authorization", "token-1"))
	req := NewRequest("DELETE", "/users/{id}").WithPathParam("id", "42")
	require.NoError(t, d.Dispatch(context.Background(), req, nil))
}

func TestDispatcherFunc(t *testing.T) {
	var captured *Request
	d := DispatcherFunc(func(ctx context.Context, req *Request, out any) error {
		captured = req
		return nil
	})

	req := NewRequest("GET", "/ping")
	require.NoError(t, d.Dispatch(context.Background(), req, nil))
	assert.Same(t, req, captured)
}
