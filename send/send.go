// Package send has response helpers that set the content type alongside the body.
package send

import (
	"github.com/rohanthewiz/rtrie"
	"github.com/rohanthewiz/rtrie/consts"
)

// HTML sends the body with the content type set to `text/html`.
func HTML(ctx rtrie.Context, body string) error {
	ctx.Response().SetHeader(consts.HeaderContentType, consts.MIMEHTML)
	return ctx.WriteString(body)
}

// JSON encodes the object in JSON format and sends it with the content type set to `application/json`.
func JSON(ctx rtrie.Context, object any) error {
	return ctx.WriteJSON(object)
}

// Text sends the body with the content type set to `text/plain`.
func Text(ctx rtrie.Context, body string) error {
	ctx.Response().SetHeader(consts.HeaderContentType, consts.MIMETextPlain)
	return ctx.WriteString(body)
}

// Status sets the status and ends the response with an empty body.
// It does not continue the chain.
func Status(ctx rtrie.Context, status int) error {
	ctx.Response().SetStatus(status)
	return nil
}
