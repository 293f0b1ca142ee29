package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/toyz/relay/pkg/relay"
)

// FiberAdapter mounts relay routes onto a Fiber v2 app
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates an adapter around an existing Fiber app
func NewFiberAdapter(app *fiber.App) *FiberAdapter {
	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates an adapter around a fresh Fiber app
func NewDefaultFiberAdapter() *FiberAdapter {
	return &FiberAdapter{app: fiber.New()}
}

// App returns the underlying Fiber app
func (fa *FiberAdapter) App() *fiber.App {
	return fa.app
}

// Start starts the server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Mount registers every bound route of the registry with Fiber
func (fa *FiberAdapter) Mount(registry relay.RouteRegistry) {
	for _, route := range registry.BoundRoutes() {
		fa.mountRoute(route)
	}
}

func (fa *FiberAdapter) mountRoute(route relay.RouteInfo) {
	fa.app.Add(route.Verb, fiberPathFor(route.Path), func(c *fiber.Ctx) error {
		params := make(map[string]string)
		for _, name := range route.Path.ParamNames() {
			params[name] = c.Params(name)
		}
		if value := c.Params("*"); value != "" {
			params["*"] = value
		}

		query := make(map[string][]string)
		c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
			query[string(key)] = append(query[string(key)], string(value))
		})

		call := &relay.Call{
			Route:      route,
			PathParams: params,
			Query:      query,
		}
		if route.HasBody {
			body := c.Body()
			call.DecodeBody = func(out any) error {
				return json.Unmarshal(body, out)
			}
		}

		// Fiber contexts are recycled; handlers get a detached context
		out, err := route.Handler(context.Background(), call)
		if err != nil {
			return writeFiberError(c, err)
		}
		if out == nil {
			return c.SendStatus(http.StatusNoContent)
		}
		return c.Status(http.StatusOK).JSON(out)
	})
}

func writeFiberError(c *fiber.Ctx, err error) error {
	var httpErr *relay.HTTPError
	if errors.As(err, &httpErr) {
		return c.Status(httpErr.StatusCode).JSON(httpErr)
	}
	return c.Status(http.StatusInternalServerError).JSON(relay.ErrInternalServerError(err.Error()))
}

// fiberPathFor converts a relay path template to Fiber route syntax:
// /users/{id} becomes /users/:id, /files/{*} becomes /files/*
func fiberPathFor(path relay.Path) string {
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
