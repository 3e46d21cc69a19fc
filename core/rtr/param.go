package rtr

// findParamChild finds the parameter child of node that captures segment.
// The first parameter child in registration order wins; with registration
// rejecting differently-named siblings there is at most one.
// It returns the child and the parameter name without its colon.
func findParamChild[T any](node *treeNode[T], segment string) (*treeNode[T], string, bool) {
	if len(node.paramKeys) == 0 || segment == "" {
		return nil, "", false
	}

	key := node.paramKeys[0]
	return node.children[key], key[1:], true
}
