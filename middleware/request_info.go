package middleware

import (
	"time"

	"github.com/rohanthewiz/rtrie"
	"github.com/rohanthewiz/rtrie/logger"
)

// RequestInfo logs the method, path, status and duration of each request
// once the rest of the chain has returned.
//
// if l is nil, the middleware only continues the chain.
func RequestInfo(l logger.Logger) rtrie.Handler {
	return func(ctx rtrie.Context) error {
		if l == nil {
			return ctx.Next()
		}

		start := time.Now()
		err := ctx.Next()

		fields := logger.Fields{
			"status":   ctx.Response().Status(),
			"duration": time.Since(start).String(),
		}
		if addr := ctx.Request().RemoteAddr(); addr != "" {
			fields["remote"] = addr
		}
		if id, ok := ctx.Get(RequestIDKey).(string); ok {
			fields["request_id"] = id
		}

		l.Info(ctx.Request().Method()+" "+ctx.Request().Path(), fields)
		return err
	}
}
