package middleware

import (
	"github.com/google/uuid"
	"github.com/rohanthewiz/rtrie"
	"github.com/rohanthewiz/rtrie/consts"
)

// RequestIDKey is the context data key holding the request id.
const RequestIDKey = "request_id"

// RequestID tags the request with an id, reusing an incoming X-Request-ID
// header or generating a uuid. The id is echoed in the response header
// and stored under RequestIDKey.
func RequestID() rtrie.Handler {
	return func(ctx rtrie.Context) error {
		id := ctx.Request().Header(consts.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx.Set(RequestIDKey, id)
		ctx.Response().SetHeader(consts.HeaderRequestID, id)
		return ctx.Next()
	}
}
