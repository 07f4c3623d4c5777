package auth

import (
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Access classifies what a route requires from the caller.
type Access int

const (
	AccessAuthenticated Access = iota
	AccessPublic
	AccessAdminOnly
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "PUBLIC"
	case AccessAdminOnly:
		return "ADMIN_ONLY"
	default:
		return "AUTHENTICATED"
	}
}

// UnmarshalYAML accepts the names returned by String.
func (a *Access) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "PUBLIC":
		*a = AccessPublic
	case "AUTHENTICATED":
		*a = AccessAuthenticated
	case "ADMIN_ONLY":
		*a = AccessAdminOnly
	default:
		return fmt.Errorf("unknown access %q", name)
	}
	return nil
}

// RouteRule binds a method and path prefix to an access class. An empty Method matches any method.
type RouteRule struct {
	Method string `yaml:"method"`
	Prefix string `yaml:"prefix"`
	Access Access `yaml:"access"`
}

// RouteTable is the static route classification consulted by the gates.
// It is built once at startup and only read afterwards.
type RouteTable struct {
	rules    []RouteRule
	fallback Access
}

// NewRouteTable normalizes the rules. Unmatched routes get the fallback class.
func NewRouteTable(fallback Access, rules ...RouteRule) (*RouteTable, error) {
	normalized := make([]RouteRule, 0, len(rules))
	for _, rule := range rules {
		prefix := strings.ToLower(strings.TrimSpace(rule.Prefix))
		if !strings.HasPrefix(prefix, "/") {
			return nil, fmt.Errorf("route prefix %q must start with /", rule.Prefix)
		}
		if len(prefix) > 1 {
			prefix = strings.TrimRight(prefix, "/")
		}
		normalized = append(normalized, RouteRule{
			Method: strings.ToUpper(strings.TrimSpace(rule.Method)),
			Prefix: prefix,
			Access: rule.Access,
		})
	}
	return &RouteTable{rules: normalized, fallback: fallback}, nil
}

// DefaultRouteTable classifies the routes registered by the HTTP layer.
func DefaultRouteTable() *RouteTable {
	table, _ := NewRouteTable(AccessAuthenticated,
		RouteRule{Method: "POST", Prefix: "/auth/signup", Access: AccessPublic},
		RouteRule{Method: "POST", Prefix: "/auth/signin", Access: AccessPublic},
		RouteRule{Method: "GET", Prefix: "/health", Access: AccessPublic},
		RouteRule{Method: "GET", Prefix: "/metrics", Access: AccessPublic},
		RouteRule{Prefix: "/admin", Access: AccessAdminOnly},
	)
	return table
}

type routePolicyFile struct {
	Fallback *Access     `yaml:"fallback"`
	Rules    []RouteRule `yaml:"rules"`
}

// LoadRouteTable reads a YAML policy file. An empty path returns DefaultRouteTable.
func LoadRouteTable(path string) (*RouteTable, error) {
	if path == "" {
		return DefaultRouteTable(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route policy: %w", err)
	}
	return ParseRouteTable(content)
}

// ParseRouteTable decodes a YAML policy document.
func ParseRouteTable(content []byte) (*RouteTable, error) {
	var doc routePolicyFile
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decode route policy: %w", err)
	}
	fallback := AccessAuthenticated
	if doc.Fallback != nil {
		fallback = *doc.Fallback
	}
	return NewRouteTable(fallback, doc.Rules...)
}

// Classify returns the access class for a request. Prefixes match on path segment
// boundaries; the longest matching prefix wins and a method-specific rule beats a
// wildcard one of the same length. Matching ignores case and redundant slashes, so it
// is never stricter than the router.
func (t *RouteTable) Classify(method, reqPath string) Access {
	method = strings.ToUpper(method)
	reqPath = normalizePath(reqPath)
	best := -1
	bestLen := -1
	for i, rule := range t.rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if !matchesPrefix(reqPath, rule.Prefix) {
			continue
		}
		l := len(rule.Prefix)
		if l > bestLen || (l == bestLen && rule.Method != "" && t.rules[best].Method == "") {
			best, bestLen = i, l
		}
	}
	if best < 0 {
		return t.fallback
	}
	return t.rules[best].Access
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return strings.ToLower(path.Clean("/" + p))
}

func matchesPrefix(p, prefix string) bool {
	if prefix == "/" {
		return true
	}
	if !strings.HasPrefix(p, prefix) {
		return false
	}
	return len(p) == len(prefix) || p[len(prefix)] == '/'
}
