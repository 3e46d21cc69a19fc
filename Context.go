package rtrie

import (
	"encoding/json"
	"errors"

	"github.com/rohanthewiz/rtrie/consts"
	"github.com/rohanthewiz/rtrie/core/chain"
	"github.com/rohanthewiz/serr"
)

// Handler is one link of a request's handler chain.
// It continues the chain by calling ctx.Next(); returning without calling it
// stops the chain for this request.
type Handler func(ctx Context) error

// Context is the interface for a request and its response.
type Context interface {
	BindJSON(any) error
	Bytes([]byte) error
	Error(...any) error
	Get(string) any
	Has(string) bool
	Next() error
	Redirect(int, string) error
	Request() Request
	Response() Response
	Set(string, any)
	Status(int) Context
	WriteJSON(any) error
	WriteString(string) error
}

// context contains the request and response data.
type context struct {
	request
	response
	chain *chain.Chain[Handler]
	data  map[string]any
}

// BindJSON decodes the request body into v.
func (ctx *context) BindJSON(v any) error {
	if len(ctx.request.body) == 0 {
		return serr.New("empty request body")
	}

	if err := json.Unmarshal(ctx.request.body, v); err != nil {
		return serr.Wrap(err, "path", ctx.request.path)
	}

	return nil
}

// Bytes adds the raw byte slice to the response body.
func (ctx *context) Bytes(body []byte) error {
	ctx.response.body = append(ctx.response.body, body...)
	return nil
}

// Error provides a convenient way to wrap multiple errors.
func (ctx *context) Error(messages ...any) error {
	var combined []error

	for _, msg := range messages {
		switch err := msg.(type) {
		case error:
			combined = append(combined, err)
		case string:
			combined = append(combined, errors.New(err))
		}
	}

	return errors.Join(combined...)
}

// Get returns request-scoped data stored with Set.
func (ctx *context) Get(key string) any {
	return ctx.data[key]
}

// Has reports whether key was stored with Set.
func (ctx *context) Has(key string) bool {
	_, ok := ctx.data[key]
	return ok
}

// Next executes the next handler in the chain.
func (ctx *context) Next() error {
	if ctx.chain == nil {
		return nil
	}

	return ctx.chain.Next()
}

// Redirect redirects the client to a different location
// with the specified status code.
func (ctx *context) Redirect(status int, location string) error {
	ctx.response.SetStatus(status)
	ctx.response.SetHeader(consts.HeaderLocation, location)
	return nil
}

// Request returns the HTTP request.
func (ctx *context) Request() Request {
	return &ctx.request
}

// Response returns the HTTP response.
func (ctx *context) Response() Response {
	return &ctx.response
}

// Set stores request-scoped data for handlers further down the chain.
func (ctx *context) Set(key string, value any) {
	if ctx.data == nil {
		ctx.data = make(map[string]any, 4)
	}

	ctx.data[key] = value
}

// Status sets the HTTP status of the response
// and returns the context for method chaining.
func (ctx *context) Status(status int) Context {
	ctx.response.SetStatus(status)
	return ctx
}

// WriteJSON encodes v as the response body with the JSON content type.
func (ctx *context) WriteJSON(v any) error {
	ctx.response.SetHeader(consts.HeaderContentType, consts.MIMEJSON)
	return json.NewEncoder(&ctx.response).Encode(v)
}

// WriteString adds the given string to the response body.
func (ctx *context) WriteString(body string) error {
	ctx.response.body = append(ctx.response.body, body...)
	return nil
}

// reset prepares a pooled context for the next request.
func (ctx *context) reset() {
	ctx.request.reset()
	ctx.response.reset()
	ctx.chain = nil
	clear(ctx.data)
}
