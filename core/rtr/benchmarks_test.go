package rtr_test

import (
	"testing"

	"github.com/rohanthewiz/rtrie/core/rtr"
)

func BenchmarkBlog(b *testing.B) {
	r := rtr.New[string]()
	_ = r.Use("*", "log")
	_ = r.Get("/", "home")
	_ = r.Get("/:id", "post")
	_ = r.Get("/tags/:tag", "tag")

	b.Run("Len1-Param0", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r.Lookup("GET", "/")
		}
	})

	b.Run("Len1-Param1", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r.Lookup("GET", "/hello-world")
		}
	})
}

func BenchmarkGitHub(b *testing.B) {
	r := rtr.New[string]()
	_ = r.Get("/issues", "")
	_ = r.Get("/gists/:id", "")
	_ = r.Get("/repos/:owner/:repo/issues", "")
	_ = r.Use("/repos/*", "")

	b.Run("Len7-Param0", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r.Lookup("GET", "/issues")
		}
	})

	b.Run("Len7-Param1", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r.Lookup("GET", "/gists/1234")
		}
	})

	b.Run("Len7-Param2", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r.Lookup("GET", "/repos/rohanthewiz/rtrie/issues")
		}
	})
}
