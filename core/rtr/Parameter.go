package rtr

// Parameter represents a URL parameter extracted from dynamic route segments.
//
// Example:
//   Route: /user/:id/posts/:postId
//   URL:   /user/123/posts/456
//   Result: Params{{Key: "id", Value: "123"}, {Key: "postId", Value: "456"}}
type Parameter struct {
	Key   string
	Value string
}

// Params holds the bindings of one resolution in path order.
type Params []Parameter

// Get returns the value bound to name.
// When a name is bound at more than one depth the deepest binding wins.
func (ps Params) Get(name string) (string, bool) {
	for i := len(ps) - 1; i >= 0; i-- {
		if ps[i].Key == name {
			return ps[i].Value, true
		}
	}

	return "", false
}

// Map returns the bindings as a map, deepest binding winning.
func (ps Params) Map() map[string]string {
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		m[p.Key] = p.Value
	}

	return m
}
