package consts

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
	MethodConnect = "CONNECT"
	MethodTrace   = "TRACE"

	// MethodUse tags middleware registrations. It never appears on the wire.
	MethodUse = "USE"
)

const (
	HTTP  = "http"
	HTTPS = "https"
	HTTP1 = "HTTP/1.1"

	ProtocolTCP = "tcp"

	CRLF            = "\r\n"
	SchemeDelimiter = "://"
	Localhost       = "localhost"

	HTTPBadRequest      = "HTTP/1.1 400 Bad Request\r\n\r\n"
	HTTPPayloadTooLarge = "HTTP/1.1 413 Request Entity Too Large\r\n\r\n"
)

const (
	StatusOK                  = 200
	StatusMovedPermanently    = 301
	StatusFound               = 302
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusPayloadTooLarge     = 413
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
)

const (
	HeaderContentType      = "Content-Type"
	HeaderContentLength    = "Content-Length"
	HeaderTransferEncoding = "Transfer-Encoding"
	HeaderConnection       = "Connection"
	HeaderLocation         = "Location"
	HeaderRequestID        = "X-Request-ID"
)
