package domain

import "fmt"

// PackageSpec describes how a dependency was requested. It is a closed set:
// consumers match exhaustively and treat a variant they cannot handle as an
// UnsupportedSpecError, never as a silent fallthrough.
type PackageSpec interface {
	fmt.Stringer
	specTag()
}

// NpmSpec names a package resolved through a registry. Name is the bare
// name; Scope, when present, carries its "@scope" prefix. Requested is the
// raw version constraint or dist-tag the caller asked for ("" means latest).
type NpmSpec struct {
	Scope     string
	Name      string
	Requested string
}

func (s NpmSpec) specTag() {}

// FullName returns the registry-facing name, including the scope.
func (s NpmSpec) FullName() string {
	if s.Scope != "" {
		return s.Scope + "/" + s.Name
	}
	return s.Name
}

func (s NpmSpec) String() string {
	if s.Requested != "" {
		return s.FullName() + "@" + s.Requested
	}
	return s.FullName()
}

// AliasSpec is the logical name a consumer sees plus the real package to
// fetch. The target is typed NpmSpec, so an alias of an alias cannot be
// constructed.
type AliasSpec struct {
	Name    string
	Package NpmSpec
}

func (s AliasSpec) specTag() {}

func (s AliasSpec) String() string {
	return s.Name + "@npm:" + s.Package.String()
}

// DirSpec points at a package on the local filesystem. It exists so callers
// can hold any spec kind in one value; the registry fetcher rejects it.
type DirSpec struct {
	Path string
}

func (s DirSpec) specTag() {}

func (s DirSpec) String() string { return s.Path }

// GitSpec points at a version-control source. Same status as DirSpec.
type GitSpec struct {
	URL string
}

func (s GitSpec) specTag() {}

func (s GitSpec) String() string { return s.URL }

// Resolution is the concrete outcome of matching a spec against a
// packument: one version, one artifact location.
type Resolution interface {
	resolutionTag()
}

// NpmResolution locates a registry-hosted artifact.
type NpmResolution struct {
	Name      string
	Version   string
	Tarball   string
	Integrity string
}

func (r NpmResolution) resolutionTag() {}

func (r NpmResolution) String() string {
	return fmt.Sprintf("%s@%s (%s)", r.Name, r.Version, r.Tarball)
}

// DirResolution locates a filesystem artifact.
type DirResolution struct {
	Path string
}

func (r DirResolution) resolutionTag() {}

// Package is a spec that has been pinned to one version. From keeps the
// originating spec so metadata lookups can find the right packument;
// Resolved must match the backend it is handed to.
type Package struct {
	Name     string
	From     PackageSpec
	Resolved Resolution
}
