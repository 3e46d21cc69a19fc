package rtrie

import "strings"

// Header is used to store HTTP headers.
type Header struct {
	Key   string
	Value string
}

// headerValue does a case-insensitive lookup of key.
func headerValue(headers []Header, key string) string {
	for _, header := range headers {
		if strings.EqualFold(header.Key, key) {
			return header.Value
		}
	}

	return ""
}
