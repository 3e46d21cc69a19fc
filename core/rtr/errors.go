package rtr

import (
	"errors"
	"fmt"
)

var (
	// ErrRouteNotFound is returned when a request path cannot be walked through the trie.
	ErrRouteNotFound = errors.New("route not found")

	// ErrAmbiguousParam is returned when a pattern would add a second,
	// differently-named parameter at a depth that already has one.
	ErrAmbiguousParam = errors.New("ambiguous parameter route")
)

// RouteNotFoundError reports where resolution stopped.
type RouteNotFoundError struct {
	Method  string
	Path    string
	Segment string
}

func (e *RouteNotFoundError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, ErrRouteNotFound)
	}

	return fmt.Sprintf("%s %s: %s at segment %q", e.Method, e.Path, ErrRouteNotFound, e.Segment)
}

func (e *RouteNotFoundError) Unwrap() error { return ErrRouteNotFound }

// AmbiguousParamError names the registered parameter a pattern collides with.
type AmbiguousParamError struct {
	Pattern  string
	Existing string
	Param    string
}

func (e *AmbiguousParamError) Error() string {
	return fmt.Sprintf("%s: %s conflicts with %s registered at the same depth",
		e.Pattern, e.Param, e.Existing)
}

func (e *AmbiguousParamError) Unwrap() error { return ErrAmbiguousParam }

// ErrUnknownMethod is returned when registering under a method the route table has no bucket for.
var ErrUnknownMethod = errors.New("unknown route method")
