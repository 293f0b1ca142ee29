package models

// GeneratedFile represents a generated proxy file for one package.
type GeneratedFile struct {
	PackageName string // name of the package
	FilePath    string // path where the generated file should be written
	Content     string // generated Go code content
	Proxies     []GeneratedProxy
}

// GeneratedProxy describes one emitted proxy type.
type GeneratedProxy struct {
	InterfaceName string // interface the proxy implements
	TypeName      string // emitted concrete type name
	MethodCount   int    // merged methods rendered on the proxy
	RouteCount    int    // dispatch routes registered by the proxy
}
