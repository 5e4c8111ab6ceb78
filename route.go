package kalshi

import (
	"fmt"
	"net/url"
	"strings"
)

// APIPrefix is the path prefix shared by every REST route.
const APIPrefix = "/trade-api/v2"

// Route describes one REST endpoint: its method, its path template and
// whether requests to it must be signed. Path templates name parameters
// in braces, e.g. "/trade-api/v2/markets/{ticker}".
//
// Routes are plain values and safe to share.
type Route struct {
	method string
	path   string
	auth   bool
}

// NewRoute creates a Route. A path not starting with APIPrefix is
// prefixed with it.
func NewRoute(method, path string, requiresAuth bool) Route {
	if !strings.HasPrefix(path, APIPrefix+"/") {
		path = APIPrefix + "/" + strings.TrimPrefix(path, "/")
	}
	return Route{method: strings.ToUpper(method), path: path, auth: requiresAuth}
}

// Public creates a Route that is sent without authentication headers.
func Public(method, path string) Route {
	return NewRoute(method, path, false)
}

// Private creates a Route that is always signed.
func Private(method, path string) Route {
	return NewRoute(method, path, true)
}

func (r Route) Method() string     { return r.method }
func (r Route) Path() string       { return r.path }
func (r Route) RequiresAuth() bool { return r.auth }

func (r Route) String() string {
	return r.method + " " + r.path
}

// Expand substitutes params into the path template. Values are path
// escaped. Every placeholder must be supplied, and every supplied
// parameter must be used.
func (r Route) Expand(params map[string]string) (string, error) {
	var sb strings.Builder
	used := make(map[string]struct{}, len(params))
	rest := r.path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			sb.WriteString(rest)
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return "", fmt.Errorf("route %s: unterminated path parameter", r)
		}
		closing += open

		name := rest[open+1 : closing]
		value, ok := params[name]
		if !ok {
			return "", fmt.Errorf("route %s: missing path parameter %q", r, name)
		}
		if value == "" {
			return "", fmt.Errorf("route %s: path parameter %q is empty", r, name)
		}
		used[name] = struct{}{}

		sb.WriteString(rest[:open])
		sb.WriteString(url.PathEscape(value))
		rest = rest[closing+1:]
	}

	if len(used) != len(params) {
		return "", fmt.Errorf("route %s: %d path parameters supplied, %d used", r, len(params), len(used))
	}
	return sb.String(), nil
}
