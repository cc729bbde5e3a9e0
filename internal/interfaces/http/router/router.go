package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar attaches its routes to a gin group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// routeLister is implemented by registrars that can report their routes up front
type routeLister interface {
	Routes() []string
}

// Router mounts registrars under /api/<version>
type Router struct {
	engine     *gin.Engine
	basePath   string
	registrars []RouteRegistrar
}

type RouterOption func(*Router)

// WithAPIVersion mounts the API under /api/<version> instead of /api/v1
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.basePath = "/api/" + version }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, basePath: "/api/v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts every registrar. Two groups declaring the same method and path
// are reported as an error before anything is mounted, since gin would panic.
func (r *Router) Setup() error {
	seen := make(map[string]bool)
	for _, registrar := range r.registrars {
		lister, ok := registrar.(routeLister)
		if !ok {
			continue
		}
		for _, rt := range lister.Routes() {
			if seen[rt] {
				return fmt.Errorf("route %s registered twice under %s", rt, r.basePath)
			}
			seen[rt] = true
		}
	}

	api := r.engine.Group(r.basePath)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	return nil
}

// DomainGroup is the route table of one resource, e.g. /customers
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	subgroups  []*DomainGroup
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) Name() string {
	return dg.name
}

func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Use adds middleware that runs for this group and its subgroups
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodGet, path, handlers...)
}

func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPost, path, handlers...)
}

func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPatch, path, handlers...)
}

func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodDelete, path, handlers...)
}

// Handle adds a route for an arbitrary method
func (dg *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: path, handlers: handlers})
	return dg
}

// Group adds a nested group whose prefix is relative to dg
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	sub := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, sub)
	return sub
}

func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, rt := range dg.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
	for _, sub := range dg.subgroups {
		sub.RegisterRoutes(group)
	}
}

// Routes returns "METHOD /path" for every route, subgroups included, with
// paths relative to the group's parent.
func (dg *DomainGroup) Routes() []string {
	var out []string
	dg.collect(dg.prefix, &out)
	return out
}

func (dg *DomainGroup) collect(prefix string, out *[]string) {
	for _, rt := range dg.routes {
		*out = append(*out, rt.method+" "+prefix+rt.path)
	}
	for _, sub := range dg.subgroups {
		sub.collect(prefix+sub.prefix, out)
	}
}
