package adapters

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/toyz/relay/pkg/relay"
)

// GinAdapter mounts relay routes onto a Gin engine
type GinAdapter struct {
	engine *gin.Engine
}

// NewGinAdapter creates an adapter around an existing Gin engine
func NewGinAdapter(e *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: e}
}

// NewDefaultGinAdapter creates an adapter around a default Gin engine
func NewDefaultGinAdapter() *GinAdapter {
	return &GinAdapter{engine: gin.Default()}
}

// Engine returns the underlying Gin engine
func (ga *GinAdapter) Engine() *gin.Engine {
	return ga.engine
}

// Start starts the server
func (ga *GinAdapter) Start(addr string) error {
	return ga.engine.Run(addr)
}

// Mount registers every bound route of the registry with Gin
func (ga *GinAdapter) Mount(registry relay.RouteRegistry) {
	for _, route := range registry.BoundRoutes() {
		ga.mountRoute(route)
	}
}

func (ga *GinAdapter) mountRoute(route relay.RouteInfo) {
	ga.engine.Handle(route.Verb, ginPathFor(route.Path), func(c *gin.Context) {
		params := make(map[string]string)
		for _, p := range c.Params {
			if p.Key == wildcardParamName {
				// Gin includes the leading slash in wildcard captures
				params["*"] = strings.TrimPrefix(p.Value, "/")
				continue
			}
			params[p.Key] = p.Value
		}

		call := &relay.Call{
			Route:      route,
			PathParams: params,
			Query:      c.Request.URL.Query(),
		}
		if route.HasBody {
			call.DecodeBody = func(out any) error {
				return c.ShouldBindJSON(out)
			}
		}

		out, err := route.Handler(c.Request.Context(), call)
		if err != nil {
			writeGinError(c, err)
			return
		}
		if out == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, out)
	})
}

func writeGinError(c *gin.Context, err error) {
	var httpErr *relay.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.StatusCode, httpErr)
		return
	}
	c.JSON(http.StatusInternalServerError, relay.ErrInternalServerError(err.Error()))
}

// wildcardParamName is the parameter name Gin wildcards are registered under;
// Gin requires wildcards to be named.
const wildcardParamName = "relayWildcard"

// ginPathFor converts a relay path template to Gin route syntax:
// /users/{id} becomes /users/:id, /files/{*} becomes /files/*relayWildcard
func ginPathFor(path relay.Path) string {
	out := ""
	for _, part := range path.Parts() {
		switch part.Type {
		case relay.ParameterPart:
			out += ":" + part.Value
		case relay.WildcardPart:
			out += "*" + wildcardParamName
		default:
			out += part.Value
		}
	}
	return out
}
