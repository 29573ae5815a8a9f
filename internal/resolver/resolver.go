package resolver

import (
	"github.com/Masterminds/semver/v3"

	"github.com/Mario-Kart-Felix/orogene/internal/domain"
)

// Resolve pins a spec to one concrete version out of a packument. The
// requested string is tried as a dist-tag first, then as an exact version,
// then as a semver range, in which case the highest satisfying version
// wins. Selection is per-package only; dependency-graph solving happens
// elsewhere.
func Resolve(spec domain.PackageSpec, packument *domain.Packument) (*domain.Package, error) {
	var name, requested string
	switch s := spec.(type) {
	case domain.NpmSpec:
		name = s.FullName()
		requested = s.Requested
	case domain.AliasSpec:
		name = s.Name
		requested = s.Package.Requested
	default:
		return nil, &domain.UnsupportedSpecError{Spec: spec}
	}

	version, err := pickVersion(packument, requested)
	if err != nil {
		return nil, err
	}

	metadata := packument.Versions[version]
	return &domain.Package{
		Name: name,
		From: spec,
		Resolved: domain.NpmResolution{
			Name:      packument.Name,
			Version:   version,
			Tarball:   metadata.Dist.Tarball,
			Integrity: metadata.Dist.Integrity,
		},
	}, nil
}

func pickVersion(packument *domain.Packument, requested string) (string, error) {
	if requested == "" {
		requested = "latest"
	}

	if version, ok := packument.DistTags[requested]; ok {
		if _, exists := packument.Versions[version]; !exists {
			return "", &domain.VersionNotFoundError{Name: packument.Name, Version: version}
		}
		return version, nil
	}

	if _, ok := packument.Versions[requested]; ok {
		return requested, nil
	}

	constraint, err := semver.NewConstraint(requested)
	if err != nil {
		return "", &domain.VersionNotFoundError{Name: packument.Name, Version: requested}
	}

	var best *semver.Version
	var bestRaw string
	for raw := range packument.Versions {
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		if !constraint.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestRaw = raw
		}
	}
	if best == nil {
		return "", &domain.VersionNotFoundError{Name: packument.Name, Version: requested}
	}
	return bestRaw, nil
}
