package rtrie

import (
	"testing"

	"github.com/rohanthewiz/assert"
)

func TestServerDefaults(t *testing.T) {
	s := NewServer()
	assert.Equal(t, s.options.ReadTimeout, DefaultReadTimeout)
	assert.Equal(t, s.options.MaxBodySize, int64(DefaultMaxBodySize))

	s = NewServer(ServerOptions{ReadTimeout: -1, MaxBodySize: 16})
	assert.True(t, s.options.ReadTimeout < 0)
	assert.Equal(t, s.options.MaxBodySize, int64(16))
}

func TestReadBodyLimit(t *testing.T) {
	s := NewServer(ServerOptions{MaxBodySize: 8})
	ctx := s.newContext()

	assert.Equal(t, s.readBody(ctx, 1<<62, false), ErrBodyTooLarge)
	assert.Equal(t, s.readBody(ctx, 9, false), ErrBodyTooLarge)
	assert.Equal(t, len(ctx.request.body), 0)
}
