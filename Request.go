package rtrie

import (
	"bufio"
	gocontext "context"
	"net/url"

	"github.com/rohanthewiz/rtrie/core/rtr"
)

// Request is the read side of an HTTP exchange.
type Request interface {
	Body() []byte
	Context() gocontext.Context
	Header(string) string
	Host() string
	Method() string
	Param(string) string
	Params() rtr.Params
	Path() string
	Query(string) string
	RawQuery() string
	RemoteAddr() string
	Scheme() string
}

// request represents the HTTP request used in the given context.
type request struct {
	reader *bufio.Reader
	ctx    gocontext.Context

	scheme     string
	host       string
	method     string
	path       string
	query      string
	remoteAddr string

	headers []Header
	body    []byte
	params  rtr.Params

	queryArgs   url.Values
	parsedQuery bool
}

// Body returns the accumulated request body.
func (req *request) Body() []byte {
	return req.body
}

// Context returns the context the request runs under.
// It is done when the connection goes away or the server closes.
func (req *request) Context() gocontext.Context {
	if req.ctx == nil {
		return gocontext.Background()
	}

	return req.ctx
}

// Header returns the header value for the given key.
func (req *request) Header(key string) string {
	return headerValue(req.headers, key)
}

// Host returns the requested host.
func (req *request) Host() string {
	return req.host
}

// Method returns the request method.
func (req *request) Method() string {
	return req.method
}

// Param retrieves a parameter.
func (req *request) Param(name string) string {
	value, _ := req.params.Get(name)
	return value
}

// Params returns all parameter bindings in path order.
func (req *request) Params() rtr.Params {
	return req.params
}

// Path returns the requested path.
func (req *request) Path() string {
	return req.path
}

// Query returns the first query string value for key.
func (req *request) Query(key string) string {
	if !req.parsedQuery {
		req.parsedQuery = true
		// a malformed pair is skipped, the rest are kept
		req.queryArgs, _ = url.ParseQuery(req.query)
	}

	return req.queryArgs.Get(key)
}

// RawQuery returns the query string without the leading "?".
func (req *request) RawQuery() string {
	return req.query
}

// RemoteAddr returns the peer address, when known.
func (req *request) RemoteAddr() string {
	return req.remoteAddr
}

// Scheme returns either `http`, `https` or an empty string.
func (req *request) Scheme() string {
	return req.scheme
}

// reset clears the request for reuse on the next request of a connection.
func (req *request) reset() {
	req.ctx = nil
	req.scheme, req.host, req.method, req.path, req.query, req.remoteAddr = "", "", "", "", "", ""
	req.headers = req.headers[:0]
	req.body = req.body[:0]
	req.params = nil
	req.queryArgs = nil
	req.parsedQuery = false
}
