package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		arg  string
		want PackageSpec
	}{
		{"lodash", NpmSpec{Name: "lodash"}},
		{"lodash@^4.17.0", NpmSpec{Name: "lodash", Requested: "^4.17.0"}},
		{"lodash@latest", NpmSpec{Name: "lodash", Requested: "latest"}},
		{"@types/node", NpmSpec{Scope: "@types", Name: "node"}},
		{"@types/node@20.x", NpmSpec{Scope: "@types", Name: "node", Requested: "20.x"}},
		{"foo@npm:bar@^2", AliasSpec{Name: "foo", Package: NpmSpec{Name: "bar", Requested: "^2"}}},
		{"foo@npm:@scope/bar@1.0.0", AliasSpec{Name: "foo", Package: NpmSpec{Scope: "@scope", Name: "bar", Requested: "1.0.0"}}},
		{"foo@npm:bar", AliasSpec{Name: "foo", Package: NpmSpec{Name: "bar"}}},
		{"./pkg", DirSpec{Path: "./pkg"}},
		{"../pkg", DirSpec{Path: "../pkg"}},
		{"git+https://github.com/foo/bar.git", GitSpec{URL: "git+https://github.com/foo/bar.git"}},
	}
	for _, tt := range tests {
		got, err := ParseSpec(tt.arg)
		require.NoError(t, err, "arg %q", tt.arg)
		assert.Equal(t, tt.want, got, "arg %q", tt.arg)
	}
}

func TestParseSpecInvalid(t *testing.T) {
	for _, arg := range []string{"", "@scope", "@scope@1.0.0"} {
		_, err := ParseSpec(arg)
		assert.Error(t, err, "arg %q", arg)
	}
}

func TestSpecString(t *testing.T) {
	assert.Equal(t, "@types/node@20.x", NpmSpec{Scope: "@types", Name: "node", Requested: "20.x"}.String())
	assert.Equal(t, "foo@npm:bar@^2", AliasSpec{Name: "foo", Package: NpmSpec{Name: "bar", Requested: "^2"}}.String())
}
