package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mario-Kart-Felix/orogene/internal/domain"
)

func testPackument() *domain.Packument {
	versions := map[string]domain.VersionMetadata{}
	for _, v := range []string{"1.0.0", "1.4.0", "1.9.2", "2.0.0", "2.1.0-beta.1"} {
		versions[v] = domain.VersionMetadata{
			Name:    "lodash",
			Version: v,
			Dist: domain.Dist{
				Tarball:   "https://reg.example.com/lodash/-/lodash-" + v + ".tgz",
				Integrity: "sha512-" + v,
			},
		}
	}
	return &domain.Packument{
		Name:     "lodash",
		DistTags: map[string]string{"latest": "2.0.0", "next": "2.1.0-beta.1"},
		Versions: versions,
	}
}

func TestResolveDefaultsToLatestTag(t *testing.T) {
	pkg, err := Resolve(domain.NpmSpec{Name: "lodash"}, testPackument())
	require.NoError(t, err)

	res := pkg.Resolved.(domain.NpmResolution)
	assert.Equal(t, "2.0.0", res.Version)
	assert.Equal(t, "https://reg.example.com/lodash/-/lodash-2.0.0.tgz", res.Tarball)
	assert.Equal(t, "sha512-2.0.0", res.Integrity)
}

func TestResolveDistTag(t *testing.T) {
	pkg, err := Resolve(domain.NpmSpec{Name: "lodash", Requested: "next"}, testPackument())
	require.NoError(t, err)
	assert.Equal(t, "2.1.0-beta.1", pkg.Resolved.(domain.NpmResolution).Version)
}

func TestResolveExactVersion(t *testing.T) {
	pkg, err := Resolve(domain.NpmSpec{Name: "lodash", Requested: "1.4.0"}, testPackument())
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", pkg.Resolved.(domain.NpmResolution).Version)
}

func TestResolveRangePicksHighestSatisfying(t *testing.T) {
	tests := []struct {
		requested string
		want      string
	}{
		{"^1.0.0", "1.9.2"},
		{"~1.4.0", "1.4.0"},
		{">=1.0.0, <2.0.0", "1.9.2"},
		{"2.x", "2.0.0"},
	}
	for _, tt := range tests {
		pkg, err := Resolve(domain.NpmSpec{Name: "lodash", Requested: tt.requested}, testPackument())
		require.NoError(t, err, "range %q", tt.requested)
		assert.Equal(t, tt.want, pkg.Resolved.(domain.NpmResolution).Version, "range %q", tt.requested)
	}
}

func TestResolveNothingSatisfies(t *testing.T) {
	_, err := Resolve(domain.NpmSpec{Name: "lodash", Requested: "^3.0.0"}, testPackument())

	var notFound *domain.VersionNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "lodash", notFound.Name)
}

func TestResolveAliasKeepsAliasName(t *testing.T) {
	alias := domain.AliasSpec{
		Name:    "dash",
		Package: domain.NpmSpec{Name: "lodash", Requested: "^1.0.0"},
	}
	pkg, err := Resolve(alias, testPackument())
	require.NoError(t, err)

	assert.Equal(t, "dash", pkg.Name)
	assert.Equal(t, alias, pkg.From)
	res := pkg.Resolved.(domain.NpmResolution)
	assert.Equal(t, "lodash", res.Name)
	assert.Equal(t, "1.9.2", res.Version)
}

func TestResolveUnsupportedSpec(t *testing.T) {
	_, err := Resolve(domain.DirSpec{Path: "./x"}, testPackument())
	var unsupported *domain.UnsupportedSpecError
	require.True(t, errors.As(err, &unsupported))
}
