package rtr

import (
	"sort"

	"github.com/rohanthewiz/rtrie/consts"
)

// treeNode is one segment position in the route trie.
// Children are keyed by the segment exactly as registered, so a parameter
// child is keyed ":name" and a wildcard child is keyed "*".
// A node owns a RouteTable only when some pattern ends at it (a terminus).
//
// Example trie for GET /user/:id, USE *, GET /x:
//
//	root (table)
//	 ├── "*"    (table: use)
//	 ├── "user"
//	 │    └── ":id" (table: get)
//	 └── "x"    (table: get)
type treeNode[T any] struct {
	children  map[string]*treeNode[T]
	paramKeys []string // parameter child keys in registration order
	table     *RouteTable[T]
}

// child returns the child keyed exactly by segment.
func (node *treeNode[T]) child(segment string) *treeNode[T] {
	if node.children == nil {
		return nil
	}

	return node.children[segment]
}

// addChild creates an empty child keyed by segment and returns it.
// The caller has already checked that no such child exists.
func (node *treeNode[T]) addChild(segment string) *treeNode[T] {
	if node.children == nil {
		node.children = make(map[string]*treeNode[T], 2)
	}

	child := &treeNode[T]{}
	node.children[segment] = child

	if isParam(segment) {
		node.paramKeys = append(node.paramKeys, segment)
	}

	return child
}

// wildcardTable returns the table of the "*" child when that child is a terminus.
func (node *treeNode[T]) wildcardTable() *RouteTable[T] {
	wild := node.child(consts.Wildcard)
	if wild == nil {
		return nil
	}

	return wild.table
}

// ensureTable marks the node as a terminus.
func (node *treeNode[T]) ensureTable() *RouteTable[T] {
	if node.table == nil {
		node.table = &RouteTable[T]{}
	}

	return node.table
}

// each walks the subtree depth-first calling fn with the pattern of each node.
// Literal children are visited in sorted order, then parameters, then the wildcard.
func (node *treeNode[T]) each(pattern string, fn func(pattern string, node *treeNode[T])) {
	fn(pattern, node)

	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		if key == consts.Wildcard || isParam(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	keys = append(keys, node.paramKeys...)
	if node.child(consts.Wildcard) != nil {
		keys = append(keys, consts.Wildcard)
	}

	for _, key := range keys {
		node.children[key].each(joinPattern(pattern, key), fn)
	}
}

func isParam(segment string) bool {
	return len(segment) > 1 && segment[0] == consts.RuneColon
}

func joinPattern(pattern, segment string) string {
	if pattern == "/" {
		return pattern + segment
	}

	return pattern + "/" + segment
}
