package registry

import (
	"net/url"
	"strings"

	"github.com/Mario-Kart-Felix/orogene/internal/domain"
)

// DefaultRegistry is the fallback when no configured registry matches.
const DefaultRegistry = "https://registry.npmjs.org/"

// Router maps a package scope to the registry base URL that serves it. The
// empty scope is the unscoped/default entry. Pure policy, no network or
// cache interaction.
type Router struct {
	registries map[string]*url.URL
}

// NewRouter builds a router from a scope -> base URL table. Base URLs are
// normalized to end with "/" so package names join as path segments.
func NewRouter(registries map[string]string) (*Router, error) {
	table := make(map[string]*url.URL, len(registries))
	for scope, raw := range registries {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, err
		}
		table[scope] = u
	}
	return &Router{registries: table}, nil
}

var defaultURL = must(url.Parse(DefaultRegistry))

func must(u *url.URL, err error) *url.URL {
	if err != nil {
		panic(err)
	}
	return u
}

// PickRegistry resolves a scope through the 3-tier fallback: exact scope
// entry, then the empty-scope entry, then the hard-coded default.
func (r *Router) PickRegistry(scope string) *url.URL {
	if scope != "" {
		if u, ok := r.registries[scope]; ok {
			return cloneURL(u)
		}
	}
	if u, ok := r.registries[""]; ok {
		return cloneURL(u)
	}
	return cloneURL(defaultURL)
}

// PackumentURL joins the scope's registry base with the package name as a
// single escaped path segment ("@scope/name" becomes "@scope%2Fname").
func (r *Router) PackumentURL(scope, name string) (*url.URL, error) {
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return nil, &domain.InvalidPackageNameError{Name: name}
	}
	ref, err := url.Parse(url.PathEscape(name))
	if err != nil {
		return nil, &domain.InvalidPackageNameError{Name: name, Err: err}
	}
	return r.PickRegistry(scope).ResolveReference(ref), nil
}

func cloneURL(u *url.URL) *url.URL {
	clone := *u
	return &clone
}
