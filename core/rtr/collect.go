package rtr

// collector gathers the handlers that apply to one resolution, in order.
// Wildcard subtree handlers are gathered at every traversed depth,
// root first, followed by the exact-path middleware and method handlers.
type collector[T any] struct {
	method    Method
	handlers  []T
	endpoints int
}

// onTraversal appends the "*" child's middleware then its method handlers,
// when that child is a terminus.
func (c *collector[T]) onTraversal(node *treeNode[T]) {
	if wild := node.wildcardTable(); wild != nil {
		c.appendTable(wild)
	}
}

// onTerminus runs the wildcard step for the final node, then appends the
// node's own middleware and method handlers.
func (c *collector[T]) onTerminus(node *treeNode[T]) {
	c.onTraversal(node)

	if node.table != nil {
		c.appendTable(node.table)
	}
}

func (c *collector[T]) appendTable(table *RouteTable[T]) {
	endpoints := table.Handlers(c.method)
	c.handlers = append(c.handlers, table.Handlers(MethodUse)...)
	c.handlers = append(c.handlers, endpoints...)
	c.endpoints += len(endpoints)
}
