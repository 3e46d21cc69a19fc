package rtr

// RouteTable holds the handlers registered at one path terminus,
// bucketed by method, plus the middleware bucket.
// Each bucket preserves insertion order, which is the execution order.
type RouteTable[T any] struct {
	use    []T
	get    []T
	post   []T
	put    []T
	delete []T
}

// Append adds the handler to the bucket for method.
// Buckets only grow.
func (rt *RouteTable[T]) Append(method Method, handler T) {
	bucket := rt.bucket(method)
	if bucket == nil {
		return
	}

	*bucket = append(*bucket, handler)
}

// Handlers returns the bucket for method, or nil for an unknown method.
// The returned slice must not be modified.
func (rt *RouteTable[T]) Handlers(method Method) []T {
	bucket := rt.bucket(method)
	if bucket == nil {
		return nil
	}

	return *bucket
}

// Len is the total number of handlers across all buckets.
func (rt *RouteTable[T]) Len() int {
	return len(rt.use) + len(rt.get) + len(rt.post) + len(rt.put) + len(rt.delete)
}

// bucket selects the slice by method tag.
func (rt *RouteTable[T]) bucket(method Method) *[]T {
	switch method {
	case MethodUse:
		return &rt.use
	case MethodGet:
		return &rt.get
	case MethodPost:
		return &rt.post
	case MethodPut:
		return &rt.put
	case MethodDelete:
		return &rt.delete
	default:
		return nil
	}
}
