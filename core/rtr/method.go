package rtr

import (
	"strings"

	"github.com/rohanthewiz/rtrie/consts"
)

// Method tags the handler bucket a route is stored in.
// MethodUse is not an HTTP method: it is the middleware bucket,
// collected for every request method.
type Method uint8

const (
	MethodUnknown Method = iota
	MethodGet
	MethodPost
	MethodPut
	MethodDelete
	MethodUse
)

// ParseMethod maps a method name to its tag. Case is ignored.
// Methods the route table has no bucket for map to MethodUnknown.
func ParseMethod(name string) Method {
	switch strings.ToUpper(name) {
	case consts.MethodGet:
		return MethodGet
	case consts.MethodPost:
		return MethodPost
	case consts.MethodPut:
		return MethodPut
	case consts.MethodDelete:
		return MethodDelete
	case consts.MethodUse:
		return MethodUse
	default:
		return MethodUnknown
	}
}

func (m Method) String() string {
	switch m {
	case MethodGet:
		return consts.MethodGet
	case MethodPost:
		return consts.MethodPost
	case MethodPut:
		return consts.MethodPut
	case MethodDelete:
		return consts.MethodDelete
	case MethodUse:
		return consts.MethodUse
	default:
		return "UNKNOWN"
	}
}
