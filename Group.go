package rtrie

import (
	"path"

	"github.com/rohanthewiz/rtrie/consts"
)

// Group represents a route group with a common prefix and middleware.
// Group middleware is registered under "<prefix>/*", so it runs for the
// prefix itself and every path below it, after middleware registered
// nearer the root. Groups can be nested.
type Group struct {
	prefix string
	server *Server
}

// Group creates a route group under prefix with optional middleware.
func (s *Server) Group(prefix string, handlers ...Handler) *Group {
	g := &Group{
		prefix: path.Join("/", prefix),
		server: s,
	}

	g.Use(handlers...)
	return g
}

// Group creates a sub-group with additional prefix and optional middleware.
// Example: apiGroup.Group("/users", authMiddleware) creates /api/users with auth.
func (g *Group) Group(prefix string, handlers ...Handler) *Group {
	return g.server.Group(path.Join(g.prefix, prefix), handlers...)
}

// Prefix returns the group's path prefix.
func (g *Group) Prefix() string {
	return g.prefix
}

// Use adds middleware to the group's subtree.
// Unlike wrapping, it also applies to routes registered before this call.
func (g *Group) Use(handlers ...Handler) {
	g.server.UseAt(path.Join(g.prefix, consts.Wildcard), handlers...)
}

// Get registers a GET route with the group prefix
func (g *Group) Get(path string, handler Handler) {
	g.server.Get(g.join(path), handler)
}

// Post registers a POST route with the group prefix
func (g *Group) Post(path string, handler Handler) {
	g.server.Post(g.join(path), handler)
}

// Put registers a PUT route with the group prefix
func (g *Group) Put(path string, handler Handler) {
	g.server.Put(g.join(path), handler)
}

// Delete registers a DELETE route with the group prefix
func (g *Group) Delete(path string, handler Handler) {
	g.server.Delete(g.join(path), handler)
}

func (g *Group) join(routePath string) string {
	return path.Join(g.prefix, routePath)
}
