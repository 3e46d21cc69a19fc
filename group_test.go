package rtrie_test

import (
	"net/http"
	"testing"

	"github.com/rohanthewiz/assert"
	"github.com/rohanthewiz/rtrie"
	"github.com/rohanthewiz/rtrie/logger"
)

func TestGroup(t *testing.T) {
	s := rtrie.NewServer()

	api := s.Group("/api")
	api.Get("/users", func(ctx rtrie.Context) error {
		return ctx.WriteString("users list")
	})
	api.Post("/users", func(ctx rtrie.Context) error {
		return ctx.WriteString("user created")
	})

	response := s.Request("GET", "/api/users", nil, nil)
	assert.Equal(t, http.StatusOK, response.Status())
	assert.Equal(t, "users list", string(response.Body()))

	response = s.Request("POST", "/api/users", nil, nil)
	assert.Equal(t, http.StatusOK, response.Status())
	assert.Equal(t, "user created", string(response.Body()))

	// Non-existent route
	response = s.Request("GET", "/users", nil, nil)
	assert.Equal(t, http.StatusNotFound, response.Status())
}

func TestGroupPrefix(t *testing.T) {
	s := rtrie.NewServer()

	assert.Equal(t, s.Group("api").Prefix(), "/api")
	assert.Equal(t, s.Group("/api/").Group("v1").Prefix(), "/api/v1")
}

func TestGroupMiddleware(t *testing.T) {
	s := rtrie.NewServer()

	var executionOrder []string

	s.Use(func(ctx rtrie.Context) error {
		executionOrder = append(executionOrder, "server-middleware")
		return ctx.Next()
	})

	api := s.Group("/api", func(ctx rtrie.Context) error {
		executionOrder = append(executionOrder, "api-middleware")
		ctx.Response().SetHeader("X-API", "true")
		return ctx.Next()
	})

	api.Get("/test", func(ctx rtrie.Context) error {
		executionOrder = append(executionOrder, "handler")
		return ctx.WriteString("test response")
	})

	response := s.Request("GET", "/api/test", nil, nil)

	assert.Equal(t, http.StatusOK, response.Status())
	assert.Equal(t, "test response", string(response.Body()))
	assert.Equal(t, "true", response.Header("X-API"))
	assert.DeepEqual(t, executionOrder, []string{"server-middleware", "api-middleware", "handler"})
}

func TestNestedGroups(t *testing.T) {
	s := rtrie.NewServer()

	var seen []string
	api := s.Group("/api", func(ctx rtrie.Context) error {
		seen = append(seen, "api")
		return ctx.Next()
	})
	v1 := api.Group("/v1", func(ctx rtrie.Context) error {
		seen = append(seen, "v1")
		return ctx.Next()
	})
	v2 := api.Group("/v2")

	v1.Get("/status", func(ctx rtrie.Context) error {
		return ctx.WriteString("v1 status")
	})

	v2.Get("/status", func(ctx rtrie.Context) error {
		return ctx.WriteString("v2 status")
	})

	response := s.Request("GET", "/api/v1/status", nil, nil)
	assert.Equal(t, http.StatusOK, response.Status())
	assert.Equal(t, "v1 status", string(response.Body()))
	assert.DeepEqual(t, seen, []string{"api", "v1"})

	seen = nil
	response = s.Request("GET", "/api/v2/status", nil, nil)
	assert.Equal(t, http.StatusOK, response.Status())
	assert.Equal(t, "v2 status", string(response.Body()))
	assert.DeepEqual(t, seen, []string{"api"})
}

func TestGroupAllMethods(t *testing.T) {
	s := rtrie.NewServer()
	api := s.Group("/api")

	api.Get("/resource", func(ctx rtrie.Context) error {
		return ctx.WriteString("GET")
	})
	api.Post("/resource", func(ctx rtrie.Context) error {
		return ctx.WriteString("POST")
	})
	api.Put("/resource", func(ctx rtrie.Context) error {
		return ctx.WriteString("PUT")
	})
	api.Delete("/resource", func(ctx rtrie.Context) error {
		return ctx.WriteString("DELETE")
	})

	for _, method := range []string{"GET", "POST", "PUT", "DELETE"} {
		response := s.Request(method, "/api/resource", nil, nil)
		assert.Equal(t, http.StatusOK, response.Status())
		assert.Equal(t, method, string(response.Body()))
	}
}

func TestGroupMiddlewareIndependence(t *testing.T) {
	s := rtrie.NewServer()

	auth := s.Group("/auth", func(ctx rtrie.Context) error {
		ctx.Response().SetHeader("X-Auth", "required")
		return ctx.Next()
	})

	public := s.Group("/public", func(ctx rtrie.Context) error {
		ctx.Response().SetHeader("X-Public", "true")
		return ctx.Next()
	})

	auth.Get("/profile", func(ctx rtrie.Context) error {
		return ctx.WriteString("auth profile")
	})

	public.Get("/info", func(ctx rtrie.Context) error {
		return ctx.WriteString("public info")
	})

	response := s.Request("GET", "/auth/profile", nil, nil)
	assert.Equal(t, "auth profile", string(response.Body()))
	assert.Equal(t, "required", response.Header("X-Auth"))
	assert.Equal(t, "", response.Header("X-Public"))

	response = s.Request("GET", "/public/info", nil, nil)
	assert.Equal(t, "public info", string(response.Body()))
	assert.Equal(t, "true", response.Header("X-Public"))
	assert.Equal(t, "", response.Header("X-Auth"))
}

func TestGroupUseMethod(t *testing.T) {
	s := rtrie.NewServer()

	var middlewareOrder []string

	api := s.Group("/api")

	api.Get("/test", func(ctx rtrie.Context) error {
		middlewareOrder = append(middlewareOrder, "handler")
		return ctx.WriteString("done")
	})

	// Group middleware covers routes registered before it
	api.Use(func(ctx rtrie.Context) error {
		middlewareOrder = append(middlewareOrder, "first")
		return ctx.Next()
	})

	api.Use(func(ctx rtrie.Context) error {
		middlewareOrder = append(middlewareOrder, "second")
		return ctx.Next()
	})

	response := s.Request("GET", "/api/test", nil, nil)
	assert.Equal(t, http.StatusOK, response.Status())
	assert.DeepEqual(t, middlewareOrder, []string{"first", "second", "handler"})
}

func TestGroupMiddlewareAtPrefix(t *testing.T) {
	s := rtrie.NewServer()

	calls := 0
	api := s.Group("/api", func(ctx rtrie.Context) error {
		calls++
		return ctx.Next()
	})
	api.Get("/", func(ctx rtrie.Context) error {
		return ctx.WriteString("index")
	})

	response := s.Request("GET", "/api", nil, nil)
	assert.Equal(t, "index", string(response.Body()))
	assert.Equal(t, 1, calls)
}

func TestGroupErrorHandling(t *testing.T) {
	s := rtrie.NewServer(rtrie.ServerOptions{Logger: logger.Noop{}})

	api := s.Group("/api", func(ctx rtrie.Context) error {
		if ctx.Request().Path() == "/api/error" {
			return ctx.Error("middleware error")
		}
		return ctx.Next()
	})

	api.Get("/test", func(ctx rtrie.Context) error {
		return ctx.WriteString("success")
	})

	api.Get("/error", func(ctx rtrie.Context) error {
		return ctx.WriteString("should not reach here")
	})

	response := s.Request("GET", "/api/test", nil, nil)
	assert.Equal(t, http.StatusOK, response.Status())
	assert.Equal(t, "success", string(response.Body()))

	response = s.Request("GET", "/api/error", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, response.Status())
	assert.Equal(t, "", string(response.Body()))
}

func TestGroupWithParameters(t *testing.T) {
	s := rtrie.NewServer()

	users := s.Group("/users")

	users.Get("/:id", func(ctx rtrie.Context) error {
		return ctx.WriteString("user " + ctx.Request().Param("id"))
	})

	users.Get("/:id/posts/:postId", func(ctx rtrie.Context) error {
		userID := ctx.Request().Param("id")
		postID := ctx.Request().Param("postId")
		return ctx.WriteString("user " + userID + " post " + postID)
	})

	response := s.Request("GET", "/users/123", nil, nil)
	assert.Equal(t, http.StatusOK, response.Status())
	assert.Equal(t, "user 123", string(response.Body()))

	response = s.Request("GET", "/users/123/posts/456", nil, nil)
	assert.Equal(t, http.StatusOK, response.Status())
	assert.Equal(t, "user 123 post 456", string(response.Body()))
}
