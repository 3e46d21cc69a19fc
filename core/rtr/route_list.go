package rtr

// RouteList represents a registered route for debugging and inspection purposes.
//
// Fields:
//   - Method: method tag, USE for middleware
//   - Path: the pattern as registered, normalized (e.g., "/users/:id")
//   - Handlers: number of handlers in that bucket
type RouteList struct {
	Method   string
	Path     string
	Handlers int
}
