package rtrie

import (
	"bufio"
	"bytes"
	gocontext "context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rohanthewiz/rtrie/consts"
	"github.com/rohanthewiz/rtrie/core/chain"
	"github.com/rohanthewiz/rtrie/core/rtr"
	"github.com/rohanthewiz/rtrie/logger"
	"github.com/rohanthewiz/serr"
)

// ErrServing is the panic value for routes registered after Run started.
var ErrServing = errors.New("route registered after serving started")

// ErrBodyTooLarge is returned when a request body exceeds ServerOptions.MaxBodySize.
var ErrBodyTooLarge = errors.New("request body too large")

const (
	DefaultReadTimeout = 30 * time.Second
	DefaultMaxBodySize = 4 << 20
)

// ServerOptions configures a Server.
type ServerOptions struct {
	// Address is the listen address used by Run. Default ":8080".
	Address string
	// Verbose logs every request at debug level and the listen address at start.
	Verbose bool
	// Logger receives server logs. Default: a logger.StdLogger at INFO.
	Logger logger.Logger
	// NotFound is called when a request resolves to no handlers, and when
	// only middleware applied and it completed without writing a response.
	// Default: status 404 with an empty body.
	NotFound Handler
	// ReadTimeout bounds reading one request on the built-in listener,
	// idle keep-alive time included. Default DefaultReadTimeout; negative means no limit.
	ReadTimeout time.Duration
	// MaxBodySize caps request bodies in bytes. Larger bodies get 413.
	// Default DefaultMaxBodySize.
	MaxBodySize int64
	// StatusChan, when set, receives a value once the listener is accepting.
	// It should be buffered so the server does not block on it.
	StatusChan chan struct{}
}

// Server is the HTTP Server.
type Server struct {
	options      ServerOptions
	router       *rtr.Router[Handler]
	log          logger.Logger
	notFound     Handler
	errorHandler func(Context, error)
	contextPool  sync.Pool

	serving  atomic.Bool
	mu       sync.Mutex
	listener net.Listener
	baseCtx  gocontext.Context
	cancel   gocontext.CancelFunc
	stop     chan struct{}
	stopOnce sync.Once
}

// NewServer creates a new HTTP server.
func NewServer(options ...ServerOptions) *Server {
	var opts ServerOptions
	if len(options) > 0 {
		opts = options[0]
	}

	if opts.Address == "" {
		opts.Address = ":8080"
	}

	if opts.Logger == nil {
		opts.Logger = logger.New()
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}

	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}

	s := &Server{
		options:  opts,
		router:   rtr.New[Handler](),
		log:      opts.Logger,
		notFound: opts.NotFound,
		stop:     make(chan struct{}),
	}

	if s.notFound == nil {
		s.notFound = func(ctx Context) error {
			ctx.Response().SetStatus(consts.StatusNotFound)
			return nil
		}
	}

	s.errorHandler = s.defaultErrorHandler
	s.baseCtx, s.cancel = gocontext.WithCancel(gocontext.Background())
	s.contextPool.New = func() any { return s.newContext() }
	return s
}

// Use adds middleware that runs for every request, ahead of any
// middleware or handlers registered at deeper paths.
func (s *Server) Use(handlers ...Handler) {
	s.UseAt(consts.Wildcard, handlers...)
}

// UseAt adds middleware at pattern. At an exact pattern it runs only for
// requests resolving to that path; under "<prefix>/*" it covers the subtree.
func (s *Server) UseAt(pattern string, handlers ...Handler) {
	for _, handler := range handlers {
		s.Handle(consts.MethodUse, pattern, handler)
	}
}

// Get registers your function to be called when the given GET path has been requested.
func (s *Server) Get(path string, handler Handler) {
	s.Handle(consts.MethodGet, path, handler)
}

// Post registers your function to be called when the given POST path has been requested.
func (s *Server) Post(path string, handler Handler) {
	s.Handle(consts.MethodPost, path, handler)
}

// Put registers your function to be called when the given PUT path has been requested.
func (s *Server) Put(path string, handler Handler) {
	s.Handle(consts.MethodPut, path, handler)
}

// Delete registers your function to be called when the given DELETE path has been requested.
func (s *Server) Delete(path string, handler Handler) {
	s.Handle(consts.MethodDelete, path, handler)
}

// Handle registers handler for the method and path pattern.
// Registration happens during setup, so a rejected pattern panics
// after being logged, the way net/http.ServeMux treats conflicts.
func (s *Server) Handle(method string, path string, handler Handler) {
	if s.serving.Load() {
		s.log.Error(ErrServing.Error(), logger.Fields{"method": method, "path": path})
		panic(ErrServing)
	}

	if err := s.router.Add(method, path, handler); err != nil {
		s.log.Error("route registration failed", logger.Fields{"method": method, "path": path, "error": err})
		panic(err)
	}
}

// NotFound replaces the handler for requests that resolve to no handlers.
func (s *Server) NotFound(handler Handler) {
	s.notFound = handler
}

// OnError replaces the function receiving errors returned from handlers.
func (s *Server) OnError(fn func(Context, error)) {
	s.errorHandler = fn
}

// Routes lists the registered routes.
func (s *Server) Routes() []rtr.RouteList {
	return s.router.Routes()
}

// Request performs a synthetic request and returns the response.
// This function keeps the response in memory so it's slightly slower than a real request.
// However it is very useful inside tests where you don't want to spin up a real web server.
func (s *Server) Request(method string, url string, headers []Header, body io.Reader) Response {
	ctx := s.newContext()
	ctx.request.headers = append(ctx.request.headers, headers...)

	if body != nil {
		data, err := io.ReadAll(body)
		if err != nil {
			s.log.Error("reading synthetic request body", logger.Fields{"error": err})
		}
		ctx.request.body = append(ctx.request.body, data...)
	}

	s.handleRequest(ctx, method, url, io.Discard)
	return ctx.Response()
}

// Run starts the server on the configured address and blocks until the
// process receives SIGINT or SIGTERM, or Close is called.
func (s *Server) Run() error {
	listener, err := net.Listen(consts.ProtocolTCP, s.options.Address)
	if err != nil {
		return serr.Wrap(err, "address", s.options.Address)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	s.serving.Store(true)

	defer listener.Close()

	go func() {
		if s.options.StatusChan != nil {
			s.options.StatusChan <- struct{}{} // Let the caller know we are running
		}

		if s.options.Verbose {
			s.log.Info("server is running", logger.Fields{"address": listener.Addr().String()})
		}

		for {
			conn, err := listener.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				continue
			}

			go s.handleConnection(conn)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case <-sig:
	case <-s.stop:
	}

	s.cancel()
	return nil
}

// Addr returns the listener address once Run is accepting, nil before.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// Close stops Run. Requests in flight see their context cancelled.
func (s *Server) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Close()
}

// ServeHTTP lets the router serve behind net/http.
// The request body is read fully before dispatch.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := s.contextPool.Get().(*context)
	defer func() {
		ctx.reset()
		s.contextPool.Put(ctx)
	}()

	ctx.request.ctx = r.Context()
	ctx.request.remoteAddr = r.RemoteAddr

	for key, values := range r.Header {
		for _, value := range values {
			ctx.request.headers = append(ctx.request.headers, Header{Key: key, Value: value})
		}
	}

	if r.Body != nil {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.options.MaxBodySize))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				w.WriteHeader(consts.StatusPayloadTooLarge)
				return
			}
			s.log.Warn("reading request body", logger.Fields{"error": serr.Wrap(err, "path", r.URL.Path)})
			w.WriteHeader(consts.StatusBadRequest)
			return
		}
		ctx.request.body = append(ctx.request.body, body...)
	}

	ctx.request.method = r.Method
	ctx.request.scheme, ctx.request.host, ctx.request.path, ctx.request.query = parseURL(r.URL.RequestURI())
	if r.Host != "" {
		ctx.request.host = r.Host
	}

	s.dispatch(ctx)

	for _, header := range ctx.response.headers {
		w.Header().Add(header.Key, header.Value)
	}
	w.Header().Set(consts.HeaderContentLength, strconv.Itoa(len(ctx.response.body)))
	w.WriteHeader(ctx.response.Status())
	_, _ = w.Write(ctx.response.body)
}

// handleConnection handles an accepted connection.
func (s *Server) handleConnection(conn net.Conn) {
	var (
		ctx    = s.contextPool.Get().(*context)
		method string
		url    string
	)

	ctx.reader.Reset(conn)

	defer conn.Close()
	defer s.contextPool.Put(ctx)
	defer ctx.reset()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("connection panic", logger.Fields{"remote": conn.RemoteAddr().String(), "panic": fmt.Sprint(r)})
		}
	}()

	for {
		if s.options.ReadTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.options.ReadTimeout))
		}

		// Read the HTTP request line
		message, err := ctx.reader.ReadString(consts.RuneNewLine)
		if err != nil {
			return
		}

		space := strings.IndexByte(message, consts.RuneSingleSpace)

		if space <= 0 {
			_, _ = io.WriteString(conn, consts.HTTPBadRequest)
			return
		}

		method = message[:space]

		if !isValidRequestMethod(method) {
			_, _ = io.WriteString(conn, consts.HTTPBadRequest)
			return
		}

		lastSpace := strings.LastIndexByte(message, consts.RuneSingleSpace)

		if lastSpace == space {
			lastSpace = len(message) - len(consts.CRLF)
		}

		if lastSpace <= space {
			_, _ = io.WriteString(conn, consts.HTTPBadRequest)
			return
		}

		url = message[space+1 : lastSpace]

		var (
			contentLen int64
			isChunked  bool
			closeConn  bool
		)

		// Add headers until we meet an empty line
		for {
			message, err = ctx.reader.ReadString(consts.RuneNewLine) // read a line
			if err != nil {
				return
			}

			if message == consts.CRLF { // "empty" line // end of headers
				break
			}

			colon := strings.IndexByte(message, consts.RuneColon)

			if colon <= 0 {
				continue // header should include a colon
			}

			key := message[:colon]
			value := strings.TrimSpace(message[colon+1:])

			ctx.request.headers = append(ctx.request.headers, Header{
				Key:   key,
				Value: value,
			})

			switch {
			case strings.EqualFold(key, consts.HeaderContentLength):
				contentLen, err = strconv.ParseInt(value, 10, 64)
				if err != nil || contentLen < 0 {
					_, _ = io.WriteString(conn, consts.HTTPBadRequest)
					return
				}
			case strings.EqualFold(key, consts.HeaderTransferEncoding) && strings.Contains(strings.ToLower(value), "chunked"):
				isChunked = true
			case strings.EqualFold(key, consts.HeaderConnection) && strings.EqualFold(value, "close"):
				closeConn = true
			}
		}

		if err = s.readBody(ctx, contentLen, isChunked); err != nil {
			s.log.Debug("reading request body", logger.Fields{"error": err, "content_length": contentLen})
			if errors.Is(err, ErrBodyTooLarge) {
				_, _ = io.WriteString(conn, consts.HTTPPayloadTooLarge)
			} else {
				_, _ = io.WriteString(conn, consts.HTTPBadRequest)
			}
			return
		}

		ctx.request.remoteAddr = conn.RemoteAddr().String()

		// Handle the request
		s.serveConn(ctx, method, url, conn)

		if closeConn {
			return
		}

		ctx.reset()
	}
}

// serveConn handles one request off the wire, turning a handler panic into a 500.
func (s *Server) serveConn(ctx *context, method string, url string, conn net.Conn) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("handler panic", logger.Fields{"method": method, "url": url, "panic": fmt.Sprint(r)})
			ctx.response.reset()
			ctx.response.SetStatus(consts.StatusInternalServerError)
			s.writeResponse(ctx, conn)
		}
	}()

	s.handleRequest(ctx, method, url, conn)
}

// readBody accumulates a fixed-length or chunked request body
// of at most MaxBodySize bytes.
func (s *Server) readBody(ctx *context, contentLen int64, isChunked bool) error {
	limit := s.options.MaxBodySize

	if contentLen > limit {
		return ErrBodyTooLarge
	}

	if contentLen > 0 {
		body := make([]byte, contentLen)
		if _, err := io.ReadFull(ctx.reader, body); err != nil {
			return serr.Wrap(err, "content_length", strconv.FormatInt(contentLen, 10))
		}
		ctx.request.body = append(ctx.request.body, body...)
		return nil
	}

	if !isChunked {
		return nil
	}

	for {
		// Read chunk size
		chunkSize, err := ctx.reader.ReadString(consts.RuneNewLine)
		if err != nil {
			return serr.Wrap(err, "stage", "chunk size")
		}

		// Parse chunk size (hex)
		size, err := strconv.ParseInt(strings.TrimSpace(chunkSize), 16, 64)
		if err != nil || size < 0 {
			return serr.New("bad chunk size", "chunk_size", strings.TrimSpace(chunkSize))
		}

		// Zero size chunk means end of body
		if size == 0 {
			// Read final CRLF
			if _, err = ctx.reader.ReadString(consts.RuneNewLine); err != nil {
				return serr.Wrap(err, "stage", "final crlf")
			}
			return nil
		}

		if size > limit-int64(len(ctx.request.body)) {
			return ErrBodyTooLarge
		}

		chunk := make([]byte, size)
		if _, err = io.ReadFull(ctx.reader, chunk); err != nil {
			return serr.Wrap(err, "stage", "chunk data")
		}
		ctx.request.body = append(ctx.request.body, chunk...)

		// Read chunk CRLF
		if _, err = ctx.reader.ReadString(consts.RuneNewLine); err != nil {
			return serr.Wrap(err, "stage", "chunk crlf")
		}
	}
}

// handleRequest handles the given request.
func (s *Server) handleRequest(ctx *context, method string, url string, writer io.Writer) {
	ctx.request.method = method
	ctx.request.scheme, ctx.request.host, ctx.request.path, ctx.request.query = parseURL(url)
	if ctx.request.ctx == nil {
		ctx.request.ctx = s.baseCtx
	}

	if host := ctx.request.Header("Host"); host != "" && ctx.request.scheme == "" {
		ctx.request.host = host
	}

	s.dispatch(ctx)
	s.writeResponse(ctx, writer)
}

// dispatch resolves the request and runs its handler chain.
// A request that resolves to nothing goes to the not-found handler
// without any chain handler having run. A middleware-only chain that
// completes without writing a response falls through to it as well.
func (s *Server) dispatch(ctx *context) {
	var err error

	match, ok := s.router.Lookup(ctx.request.method, ctx.request.path)
	if !ok || len(match.Handlers) == 0 {
		err = s.notFound(ctx)
	} else {
		ctx.request.params = match.Params
		ctx.chain = chain.New(ctx.request.ctx, match.Handlers, func(h Handler) error {
			return h(ctx)
		})
		err = ctx.chain.Run()
		if err == nil {
			// a middleware may swallow the error returned by Next
			err = ctx.chain.Err()
		}

		if err == nil && match.Endpoints == 0 && ctx.chain.State() == chain.Completed && ctx.response.untouched() {
			err = s.notFound(ctx)
		}
	}

	if s.options.Verbose {
		fields := logger.Fields{"method": ctx.request.method, "path": ctx.request.path, "status": ctx.response.Status()}
		if ctx.chain != nil {
			fields["chain"] = ctx.chain.State().String()
		}
		s.log.Debug("dispatched", fields)
	}

	if err != nil {
		s.errorHandler(ctx, err)
	}
}

// defaultErrorHandler logs the error. A response nothing was written to
// becomes a 500.
func (s *Server) defaultErrorHandler(ctx Context, err error) {
	if errors.Is(err, gocontext.Canceled) {
		return
	}

	s.log.Error(err.Error(), logger.Fields{"method": ctx.Request().Method(), "path": ctx.Request().Path()})

	res := ctx.Response()
	if res.Status() == consts.StatusOK && len(res.Body()) == 0 {
		res.SetStatus(consts.StatusInternalServerError)
	}
}

// writeResponse serializes the response as HTTP/1.1.
func (s *Server) writeResponse(ctx *context, writer io.Writer) {
	tmp := bytes.Buffer{}
	tmp.WriteString("HTTP/1.1 ")
	tmp.WriteString(strconv.Itoa(ctx.response.Status()))
	if text := http.StatusText(ctx.response.Status()); text != "" {
		tmp.WriteString(" ")
		tmp.WriteString(text)
	}
	tmp.WriteString("\r\nContent-Length: ")
	tmp.WriteString(strconv.Itoa(len(ctx.response.body)))
	tmp.WriteString("\r\n")

	for _, header := range ctx.response.headers {
		tmp.WriteString(header.Key)
		tmp.WriteString(": ")
		tmp.WriteString(header.Value)
		tmp.WriteString("\r\n")
	}

	tmp.WriteString("\r\n")
	tmp.Write(ctx.response.body)
	_, _ = writer.Write(tmp.Bytes())
}

// newContext allocates a new context with the default state.
func (s *Server) newContext() *context {
	return &context{
		request: request{
			reader:  bufio.NewReader(nil),
			body:    make([]byte, 0),
			headers: make([]Header, 0, 8),
		},
		response: response{
			body:    make([]byte, 0, 1024),
			headers: make([]Header, 0, 8),
			status:  consts.StatusOK,
		},
	}
}
