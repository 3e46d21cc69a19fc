package rtr

import (
	"fmt"
	"strings"

	"github.com/rohanthewiz/rtrie/consts"
)

// Tree is a segment trie mapping path patterns to route tables.
//
// Patterns and request paths are split on "/" with empty segments dropped,
// so "/a//b/" and "a/b" address the same node. A segment "*" is a wildcard,
// a segment ":name" is a parameter capture, anything else is a
// case-sensitive literal.
//
// Zero value is ready to use - the root node is embedded, not a pointer.
// The root stands for "/" and is always treated as a terminus.
//
// Add must not run concurrently with Resolve. Once registration is
// complete Resolve is safe for concurrent use.
type Tree[T any] struct {
	root treeNode[T]
}

// Match is the outcome of one resolution.
type Match[T any] struct {
	Handlers []T
	Params   Params
	// Endpoints counts the method handlers in Handlers. Zero means only
	// middleware applies to the path.
	Endpoints int
}

// Add registers handler under method for the given pattern.
// Missing nodes are created on the way down.
//
// A pattern that puts a parameter next to a differently-named parameter
// sibling is rejected with ErrAmbiguousParam and nothing is registered.
func (tree *Tree[T]) Add(pattern string, method Method, handler T) error {
	if method == MethodUnknown {
		return fmt.Errorf("%s: %w", pattern, ErrUnknownMethod)
	}

	segments := splitPath(pattern)

	if err := tree.checkParams(pattern, segments); err != nil {
		return err
	}

	node := &tree.root
	for _, segment := range segments {
		next := node.child(segment)
		if next == nil {
			next = node.addChild(segment)
		}
		node = next
	}

	node.ensureTable().Append(method, handler)
	return nil
}

// checkParams walks the existing part of the trie looking for a parameter
// sibling with a different name. Nodes past the existing part are new and
// cannot conflict.
func (tree *Tree[T]) checkParams(pattern string, segments []string) error {
	node := &tree.root

	for _, segment := range segments {
		if isParam(segment) && len(node.paramKeys) > 0 && node.paramKeys[0] != segment {
			return &AmbiguousParamError{
				Pattern:  pattern,
				Existing: node.paramKeys[0],
				Param:    segment,
			}
		}

		node = node.child(segment)
		if node == nil {
			return nil
		}
	}

	return nil
}

// Resolve walks the trie for path and collects the handlers that apply to
// method, together with the parameter bindings made on the way.
//
// At every depth a literal child is preferred over a parameter child.
// Handlers come out as: wildcard middleware and method handlers met at each
// depth from the root down, then the exact node's middleware, then its
// method handlers.
//
// When a segment has neither a literal nor a parameter child, Resolve
// returns a *RouteNotFoundError and no handlers.
func (tree *Tree[T]) Resolve(method string, path string) (Match[T], error) {
	m := ParseMethod(method)
	if m == MethodUnknown || m == MethodUse {
		return Match[T]{}, &RouteNotFoundError{Method: method, Path: path}
	}

	var (
		params Params
		coll   = collector[T]{method: m}
		node   = &tree.root
	)

	for _, segment := range splitPath(path) {
		coll.onTraversal(node)

		next := node.child(segment)
		if next == nil {
			var (
				name string
				ok   bool
			)

			next, name, ok = findParamChild(node, segment)
			if !ok {
				return Match[T]{}, &RouteNotFoundError{Method: method, Path: path, Segment: segment}
			}

			params = append(params, Parameter{Key: name, Value: segment})
		}

		node = next
	}

	coll.onTerminus(node)

	return Match[T]{Handlers: coll.handlers, Params: params, Endpoints: coll.endpoints}, nil
}

// Routes lists every non-empty bucket in the trie.
func (tree *Tree[T]) Routes() []RouteList {
	var routes []RouteList

	tree.root.each("/", func(pattern string, node *treeNode[T]) {
		if node.table == nil {
			return
		}

		for _, method := range []Method{MethodUse, MethodGet, MethodPost, MethodPut, MethodDelete} {
			if n := len(node.table.Handlers(method)); n > 0 {
				routes = append(routes, RouteList{Method: method.String(), Path: pattern, Handlers: n})
			}
		}
	})

	return routes
}

// splitPath splits a pattern or path into its non-empty segments.
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == consts.RuneFwdSlash
	})
}
