package rtr

// Router is the routing façade. It owns one Tree and exposes
// per-method registration plus resolution.
type Router[T any] struct {
	tree Tree[T]
}

// New creates an empty router.
func New[T any]() *Router[T] {
	return &Router[T]{}
}

// Add registers handler for the method name and pattern.
// Use consts.MethodUse to register middleware.
func (router *Router[T]) Add(method string, pattern string, handler T) error {
	return router.tree.Add(pattern, ParseMethod(method), handler)
}

// Use registers middleware at pattern. Middleware at an exact pattern runs
// only for requests resolving to that node; register it under "<pattern>/*"
// to cover the whole subtree. "*" covers every request.
func (router *Router[T]) Use(pattern string, handler T) error {
	return router.tree.Add(pattern, MethodUse, handler)
}

// Get registers a GET handler.
func (router *Router[T]) Get(pattern string, handler T) error {
	return router.tree.Add(pattern, MethodGet, handler)
}

// Post registers a POST handler.
func (router *Router[T]) Post(pattern string, handler T) error {
	return router.tree.Add(pattern, MethodPost, handler)
}

// Put registers a PUT handler.
func (router *Router[T]) Put(pattern string, handler T) error {
	return router.tree.Add(pattern, MethodPut, handler)
}

// Delete registers a DELETE handler.
func (router *Router[T]) Delete(pattern string, handler T) error {
	return router.tree.Add(pattern, MethodDelete, handler)
}

// Resolve returns the ordered handlers and parameter bindings for the request,
// or an error matching ErrRouteNotFound.
func (router *Router[T]) Resolve(method string, path string) (Match[T], error) {
	return router.tree.Resolve(method, path)
}

// Lookup is Resolve with the not-found condition reported as a bool.
func (router *Router[T]) Lookup(method string, path string) (Match[T], bool) {
	match, err := router.tree.Resolve(method, path)
	return match, err == nil
}

// Routes lists the registered routes, USE buckets included.
func (router *Router[T]) Routes() []RouteList {
	return router.tree.Routes()
}
