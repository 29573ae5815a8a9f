package domain

import (
	"context"
	"io"
)

// Fetcher is the capability contract shared by all package backends
// (registry, filesystem, version control). Each backend is a leaf
// implementation; there is no shared state between them.
type Fetcher interface {
	// Name returns the package's logical name without touching the
	// network. For an alias this is the alias's own display name.
	Name(spec PackageSpec, baseDir string) (string, error)

	// Packument retrieves the full metadata document for the spec. For an
	// alias this is the packument of the aliased target, not the alias.
	Packument(ctx context.Context, spec PackageSpec, baseDir string) (*Packument, error)

	// Metadata returns the manifest of the exact version a package was
	// resolved to.
	Metadata(ctx context.Context, pkg *Package) (*VersionMetadata, error)

	// Tarball streams the distributable archive for a resolved package.
	// The stream is not buffered; the caller owns closing it.
	Tarball(ctx context.Context, pkg *Package) (io.ReadCloser, error)
}
