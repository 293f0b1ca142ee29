package relay

import (
	"context"
	"fmt"
)

// HandlerFunc is a server-side handler bound to a registered route. The
// returned value is encoded as the response body; returning *HTTPError sets
// the response status.
type HandlerFunc func(ctx context.Context, call *Call) (any, error)

// Call carries the inbound values a handler needs: path parameter bindings
// plus the decoded request body (nil for bodiless verbs).
type Call struct {
	// Route is the registry entry being served
	Route RouteInfo

	// PathParams holds values for the route template's parameters, with the
	// wildcard suffix (if any) under "*"
	PathParams map[string]string

	// Query holds raw query string values
	Query map[string][]string

	// DecodeBody decodes the request body into out; nil for bodiless verbs
	DecodeBody func(out any) error
}

// RouteInfo describes one dispatchable method of a flattened interface.
// Generated code registers one entry per proxy method; server adapters mount
// the bound entries.
type RouteInfo struct {
	// Verb is the dispatch verb (GET, POST, PUT, DELETE, PATCH)
	Verb string

	// Path is the route template with {param} placeholders
	Path Path

	// InterfaceName is the interface the method was flattened into
	InterfaceName string

	// MethodName is the proxy method name
	MethodName string

	// PackageName is the package containing the interface
	PackageName string

	// HasBody reports whether the verb carries a request body
	HasBody bool

	// Handler is the bound server-side handler, nil until Bind is called
	Handler HandlerFunc
}

// Name returns the qualified route name used for binding
func (r RouteInfo) Name() string {
	return r.InterfaceName + "." + r.MethodName
}

// RouteRegistry provides access to all registered routes in the application
type RouteRegistry interface {
	// RegisterRoute adds a route to the registry (used by generated code)
	RegisterRoute(route RouteInfo)

	// Bind attaches a server-side handler to a registered route, addressed
	// as "Interface.Method"
	Bind(name string, handler HandlerFunc) error

	// AllRoutes returns all registered routes
	AllRoutes() []RouteInfo

	// BoundRoutes returns only routes with a handler attached
	BoundRoutes() []RouteInfo

	// RoutesByPackage returns routes filtered by package name
	RoutesByPackage(packageName string) []RouteInfo

	// RoutesByInterface returns routes filtered by interface name
	RoutesByInterface(interfaceName string) []RouteInfo

	// RoutesByVerb returns routes filtered by dispatch verb
	RoutesByVerb(verb string) []RouteInfo
}

// DefaultRouteRegistry is the global route registry instance
var DefaultRouteRegistry RouteRegistry = NewInMemoryRouteRegistry()

// InMemoryRouteRegistry implements RouteRegistry using an in-memory slice
type InMemoryRouteRegistry struct {
	routes []RouteInfo
}

// NewInMemoryRouteRegistry creates a new in-memory route registry
func NewInMemoryRouteRegistry() *InMemoryRouteRegistry {
	return &InMemoryRouteRegistry{
		routes: make([]RouteInfo, 0),
	}
}

// RegisterRoute adds a route to the registry
func (r *InMemoryRouteRegistry) RegisterRoute(route RouteInfo) {
	r.routes = append(r.routes, route)
}

// Bind attaches a handler to the named route
func (r *InMemoryRouteRegistry) Bind(name string, handler HandlerFunc) error {
	for i := range r.routes {
		if r.routes[i].Name() == name {
			r.routes[i].Handler = handler
			return nil
		}
	}
	return fmt.Errorf("no registered route named %q", name)
}

// AllRoutes returns all registered routes
func (r *InMemoryRouteRegistry) AllRoutes() []RouteInfo {
	return append([]RouteInfo(nil), r.routes...) // Return a copy
}

// BoundRoutes returns routes with a handler attached
func (r *InMemoryRouteRegistry) BoundRoutes() []RouteInfo {
	var bound []RouteInfo
	for _, route := range r.routes {
		if route.Handler != nil {
			bound = append(bound, route)
		}
	}
	return bound
}

// RoutesByPackage returns routes filtered by package name
func (r *InMemoryRouteRegistry) RoutesByPackage(packageName string) []RouteInfo {
	var filtered []RouteInfo
	for _, route := range r.routes {
		if route.PackageName == packageName {
			filtered = append(filtered, route)
		}
	}
	return filtered
}

// RoutesByInterface returns routes filtered by interface name
func (r *InMemoryRouteRegistry) RoutesByInterface(interfaceName string) []RouteInfo {
	var filtered []RouteInfo
	for _, route := range r.routes {
		if route.InterfaceName == interfaceName {
			filtered = append(filtered, route)
		}
	}
	return filtered
}

// RoutesByVerb returns routes filtered by dispatch verb
func (r *InMemoryRouteRegistry) RoutesByVerb(verb string) []RouteInfo {
	var filtered []RouteInfo
	for _, route := range r.routes {
		if route.Verb == verb {
			filtered = append(filtered, route)
		}
	}
	return filtered
}

// Convenience functions over the global registry

// Routes returns all registered routes
func Routes() []RouteInfo {
	return DefaultRouteRegistry.AllRoutes()
}

// Bind attaches a handler to a route in the global registry
func Bind(name string, handler HandlerFunc) error {
	return DefaultRouteRegistry.Bind(name, handler)
}

// RoutesByPackage returns routes for a specific package
func RoutesByPackage(packageName string) []RouteInfo {
	return DefaultRouteRegistry.RoutesByPackage(packageName)
}

// RoutesByInterface returns routes for a specific interface
func RoutesByInterface(interfaceName string) []RouteInfo {
	return DefaultRouteRegistry.RoutesByInterface(interfaceName)
}
