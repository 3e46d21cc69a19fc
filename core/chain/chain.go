// Package chain runs an ordered list of handlers as a single-pass,
// cooperative sequence. Each handler decides whether the rest of the
// sequence runs by calling the continuation.
package chain

import "context"

// State is where a chain is in its run.
type State uint8

const (
	// Pending: no handler has been invoked yet.
	Pending State = iota
	// Running: a handler is being invoked.
	Running
	// Advancing: a handler called the continuation and the next one is about to run.
	Advancing
	// Completed: no handlers remain.
	Completed
	// Halted: a handler returned without continuing, failed, or the context was cancelled.
	Halted
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Advancing:
		return "advancing"
	case Completed:
		return "completed"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// Chain is a cursor over an owned handler list.
//
// A handler's continuation takes effect at most once; further calls from the
// same handler and any call once the chain is Completed or Halted are no-ops.
// A handler is never invoked more than once.
//
// A Chain belongs to one request and is not safe for concurrent use.
type Chain[H any] struct {
	ctx      context.Context
	handlers []H
	invoke   func(H) error

	cursor   int
	frames   []int  // indexes of handlers currently on the call stack
	advanced []bool // whether handler i has used its continuation
	state    State
	err      error
}

// New creates a chain over handlers. invoke calls one handler; it is where
// the caller binds the request and response. ctx may be nil; when it is done
// the chain halts before invoking the next handler.
func New[H any](ctx context.Context, handlers []H, invoke func(H) error) *Chain[H] {
	return &Chain[H]{
		ctx:      ctx,
		handlers: handlers,
		invoke:   invoke,
		advanced: make([]bool, len(handlers)),
	}
}

// Run starts the chain by invoking the first handler.
// Calling Run on a chain that has started is a no-op.
func (c *Chain[H]) Run() error {
	if c.state != Pending {
		return nil
	}

	return c.Next()
}

// Next is the continuation. Called from inside a handler it invokes the
// following handler and returns that handler's error.
func (c *Chain[H]) Next() error {
	switch c.state {
	case Completed, Halted:
		return nil
	}

	if n := len(c.frames); n > 0 {
		top := c.frames[n-1]
		if c.advanced[top] {
			return nil
		}
		c.advanced[top] = true
		c.state = Advancing
	} else if c.state != Pending {
		// every invoked handler has already returned
		return nil
	}

	if c.cursor >= len(c.handlers) {
		c.state = Completed
		return nil
	}

	if c.ctx != nil {
		if err := c.ctx.Err(); err != nil {
			c.halt(err)
			return err
		}
	}

	i := c.cursor
	c.cursor++
	c.state = Running
	c.frames = append(c.frames, i)

	err := c.invoke(c.handlers[i])

	c.frames = c.frames[:len(c.frames)-1]

	if err != nil {
		c.halt(err)
		return err
	}

	if !c.advanced[i] && c.state == Running {
		if c.cursor < len(c.handlers) {
			c.state = Halted
		} else {
			c.state = Completed
		}
	}

	return nil
}

// State reports the current state.
func (c *Chain[H]) State() State { return c.state }

// Err returns the first error that halted the chain.
func (c *Chain[H]) Err() error { return c.err }

// Invoked is the number of handlers invoked so far.
func (c *Chain[H]) Invoked() int { return c.cursor }

// Len is the number of handlers in the chain.
func (c *Chain[H]) Len() int { return len(c.handlers) }

func (c *Chain[H]) halt(err error) {
	if c.err == nil {
		c.err = err
	}

	if c.state != Completed {
		c.state = Halted
	}
}
