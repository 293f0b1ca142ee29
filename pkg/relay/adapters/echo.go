// Package adapters mounts relay route registries onto web frameworks. Each
// adapter converts the registry's {param} templates into the framework's own
// route syntax and wraps bound handlers in the framework's handler type.
package adapters

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toyz/relay/pkg/relay"
)

// EchoAdapter mounts relay routes onto an Echo v4 engine
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates an adapter around an existing Echo instance
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates an adapter around a fresh Echo instance
func NewDefaultEchoAdapter() *EchoAdapter {
	return &EchoAdapter{engine: echo.New()}
}

// Engine returns the underlying Echo instance
func (ea *EchoAdapter) Engine() *echo.Echo {
	return ea.engine
}

// Start starts the server
func (ea *EchoAdapter) Start(addr string) error {
	return ea.engine.Start(addr)
}

// Mount registers every bound route of the registry with Echo
func (ea *EchoAdapter) Mount(registry relay.RouteRegistry) {
	for _, route := range registry.BoundRoutes() {
		ea.mountRoute(route)
	}
}

func (ea *EchoAdapter) mountRoute(route relay.RouteInfo) {
	ea.engine.Add(route.Verb, echoPathFor(route.Path), func(c echo.Context) error {
		params := make(map[string]string)
		names := c.ParamNames()
		values := c.ParamValues()
		for i, name := range names {
			if i < len(values) {
				params[name] = values[i]
			}
		}

		call := &relay.Call{
			Route:      route,
			PathParams: params,
			Query:      c.QueryParams(),
		}
		if route.HasBody {
			call.DecodeBody = func(out any) error {
				return c.Bind(out)
			}
		}

		out, err := route.Handler(c.Request().Context(), call)
		if err != nil {
			return writeEchoError(c, err)
		}
		if out == nil {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusOK, out)
	})
}

func writeEchoError(c echo.Context, err error) error {
	var httpErr *relay.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.StatusCode, httpErr)
	}
	return c.JSON(http.StatusInternalServerError, relay.ErrInternalServerError(err.Error()))
}

// echoPathFor converts a relay path template to Echo route syntax:
// /users/{id} becomes /users/:id, /files/{*} becomes /files/*
func echoPathFor(path relay.Path) string {
	out := ""
	for _, part := range path.Parts() {
		switch part.Type {
		case relay.ParameterPart:
			out += ":" + part.Value
		case relay.WildcardPart:
			out += "*"
		default:
			out += part.Value
		}
	}
	return out
}
