package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Mario-Kart-Felix/orogene/internal/client"
	"github.com/Mario-Kart-Felix/orogene/internal/domain"
	"github.com/Mario-Kart-Felix/orogene/internal/registry"
)

// Corgis are a compressed kind of packument that omits fields unnecessary
// for install-time decisions. Requesting them can significantly speed up
// metadata fetches; the registry negotiates via the Accept header.
const (
	corgiAccept = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8, */*"
	fullAccept  = "application/json"
)

// NpmFetcher resolves specs against npm-compatible registries. It owns an
// in-memory packument cache keyed by metadata URL (not by name: scope
// routing can map one name to different registries) that lives as long as
// the fetcher does.
type NpmFetcher struct {
	mu       sync.Mutex
	client   *client.Client
	useCorgi bool
	router   *registry.Router

	packuments sync.Map // metadata URL string -> *domain.Packument
	inflight   singleflight.Group
}

var _ domain.Fetcher = (*NpmFetcher)(nil)

func New(c *client.Client, useCorgi bool, router *registry.Router) *NpmFetcher {
	return &NpmFetcher{
		client:   c,
		useCorgi: useCorgi,
		router:   router,
	}
}

// handle clones the shared client under the lock and releases it before any
// I/O happens. Holding the lock across a request would serialize every
// concurrent fetch behind a single connection.
func (f *NpmFetcher) handle() *client.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.client.Clone()
}

func (f *NpmFetcher) Name(spec domain.PackageSpec, _ string) (string, error) {
	switch s := spec.(type) {
	case domain.NpmSpec:
		return s.FullName(), nil
	case domain.AliasSpec:
		return s.Name, nil
	default:
		return "", &domain.UnsupportedSpecError{Spec: spec}
	}
}

// Packument fetches the metadata document for a spec. An alias resolves the
// packument of its target package, not of its own display name; callers
// depend on finding real version data under an alias.
func (f *NpmFetcher) Packument(ctx context.Context, spec domain.PackageSpec, _ string) (*domain.Packument, error) {
	switch s := spec.(type) {
	case domain.NpmSpec:
		return f.packumentFromName(ctx, s.Scope, s.FullName())
	case domain.AliasSpec:
		return f.packumentFromName(ctx, s.Package.Scope, s.Package.FullName())
	default:
		return nil, &domain.UnsupportedSpecError{Spec: spec}
	}
}

func (f *NpmFetcher) Metadata(ctx context.Context, pkg *domain.Package) (*domain.VersionMetadata, error) {
	res, ok := pkg.Resolved.(domain.NpmResolution)
	if !ok {
		panic(fmt.Sprintf("fetcher: non-npm resolution %T handed to the npm fetcher", pkg.Resolved))
	}
	packument, err := f.Packument(ctx, pkg.From, "")
	if err != nil {
		return nil, err
	}
	metadata, ok := packument.Versions[res.Version]
	if !ok {
		return nil, &domain.VersionNotFoundError{Name: packument.Name, Version: res.Version}
	}
	return &metadata, nil
}

// Tarball streams the archive for a resolved package from the resolution's
// tarball URL. The stream is handed to the caller unbuffered; multi-megabyte
// archives must never be materialized here.
func (f *NpmFetcher) Tarball(ctx context.Context, pkg *domain.Package) (io.ReadCloser, error) {
	res, ok := pkg.Resolved.(domain.NpmResolution)
	if !ok {
		panic(fmt.Sprintf("fetcher: non-npm resolution %T handed to the npm fetcher", pkg.Resolved))
	}
	u, err := url.Parse(res.Tarball)
	if err != nil {
		return nil, &domain.FetchError{Name: res.Name, URL: res.Tarball, Err: err}
	}

	c := f.handle()
	resp, err := c.Send(ctx, c.Opts(http.MethodGet, u))
	if err != nil {
		return nil, &domain.FetchError{Name: res.Name, URL: res.Tarball, Err: err}
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		resp.Body().Close()
		return nil, &domain.FetchError{Name: res.Name, URL: res.Tarball, Status: resp.StatusCode()}
	}
	return resp.Body(), nil
}

// packumentFromName looks the URL up in the cache and otherwise fetches,
// parses, and inserts. Concurrent misses for one URL collapse onto a single
// request; inserts are whole-value, so an abandoned fetch simply never
// inserts and a racing insert is a harmless overwrite with equal data.
func (f *NpmFetcher) packumentFromName(ctx context.Context, scope, name string) (*domain.Packument, error) {
	packumentURL, err := f.router.PackumentURL(scope, name)
	if err != nil {
		return nil, err
	}
	key := packumentURL.String()

	if cached, ok := f.packuments.Load(key); ok {
		return cached.(*domain.Packument), nil
	}

	v, err, _ := f.inflight.Do(key, func() (any, error) {
		if cached, ok := f.packuments.Load(key); ok {
			return cached, nil
		}

		accept := fullAccept
		if f.useCorgi {
			accept = corgiAccept
		}

		c := f.handle()
		resp, err := c.Send(ctx, c.Opts(http.MethodGet, packumentURL).Header("Accept", accept))
		if err != nil {
			return nil, &domain.FetchError{Name: name, URL: key, Err: err}
		}
		if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
			resp.Body().Close()
			return nil, &domain.FetchError{Name: name, URL: key, Status: resp.StatusCode()}
		}

		body, err := resp.BodyString()
		if err != nil {
			return nil, &domain.FetchError{Name: name, URL: key, Err: err}
		}

		var packument domain.Packument
		if err := json.Unmarshal([]byte(body), &packument); err != nil {
			return nil, &domain.ParseError{
				Code: domain.CodeParsePackument,
				Name: name,
				Data: []byte(body),
				Err:  err,
			}
		}

		f.packuments.Store(key, &packument)
		return &packument, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Packument), nil
}
