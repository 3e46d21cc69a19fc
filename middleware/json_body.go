package middleware

import (
	"encoding/json"

	"github.com/rohanthewiz/rtrie"
	"github.com/rohanthewiz/rtrie/consts"
)

// JSONKey is the context data key holding the decoded JSON body.
const JSONKey = "json"

// JSONBody decodes the body of non-GET requests as JSON and stores the
// result under JSONKey. A malformed body ends the request with 400.
// Requests without a body pass through untouched.
func JSONBody() rtrie.Handler {
	return func(ctx rtrie.Context) error {
		req := ctx.Request()
		if req.Method() == consts.MethodGet || len(req.Body()) == 0 {
			return ctx.Next()
		}

		var v any
		if err := json.Unmarshal(req.Body(), &v); err != nil {
			ctx.Response().SetStatus(consts.StatusBadRequest)
			return nil
		}

		ctx.Set(JSONKey, v)
		return ctx.Next()
	}
}
