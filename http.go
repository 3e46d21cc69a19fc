package rtrie

import (
	"strings"

	"github.com/rohanthewiz/rtrie/consts"
)

// isValidRequestMethod returns true if the given string is a valid HTTP request method.
// Valid methods the router has no bucket for still parse; they resolve as not found.
func isValidRequestMethod(method string) bool {
	switch method {
	case consts.MethodGet, consts.MethodHead, consts.MethodPost, consts.MethodPut,
		consts.MethodDelete, consts.MethodConnect, consts.MethodOptions, consts.MethodTrace, consts.MethodPatch:
		return true
	default:
		return false
	}
}

// parseURL parses a URL and returns the scheme, host, path and query.
// The URL is expected to be in the format "scheme://host/path?query"
// Though we could have used the standard URL package we wanted to maintain fine control.
func parseURL(url string) (scheme string, host string, path string, query string) {
	schemeEndPos := strings.Index(url, consts.SchemeDelimiter)
	if schemeEndPos != -1 {
		scheme = url[:schemeEndPos]
		url = url[schemeEndPos+len(consts.SchemeDelimiter):]

		pathStartPos := strings.IndexByte(url, consts.RuneFwdSlash)
		if pathStartPos == -1 {
			host, url = url, ""
		} else {
			host = url[:pathStartPos]
			url = url[pathStartPos:]
		}
	}

	queryPos := strings.IndexByte(url, consts.RuneQuestion)
	if queryPos != -1 {
		path = url[:queryPos]
		query = url[queryPos+1:]
	} else {
		path = url
	}

	if path == "" {
		path = "/"
	}

	// If the host is empty, set it to "localhost"
	if host == "" {
		host = consts.Localhost
	}

	return
}
