package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mario-Kart-Felix/orogene/internal/domain"
)

func TestPickRegistryEmptyTable(t *testing.T) {
	r, err := NewRouter(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultRegistry, r.PickRegistry("").String())
	assert.Equal(t, DefaultRegistry, r.PickRegistry("@anything").String())
}

func TestPickRegistryScopeOverride(t *testing.T) {
	r, err := NewRouter(map[string]string{
		"":     "https://a.example.com/",
		"@foo": "https://b.example.com/",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://b.example.com/", r.PickRegistry("@foo").String())
	assert.Equal(t, "https://a.example.com/", r.PickRegistry("@bar").String())
	assert.Equal(t, "https://a.example.com/", r.PickRegistry("").String())
}

func TestPickRegistryReturnsCopy(t *testing.T) {
	r, err := NewRouter(map[string]string{"": "https://a.example.com/"})
	require.NoError(t, err)

	u := r.PickRegistry("")
	u.Host = "mutated.example.com"
	assert.Equal(t, "https://a.example.com/", r.PickRegistry("").String())
}

func TestPackumentURL(t *testing.T) {
	r, err := NewRouter(map[string]string{"": "https://reg.example.com"})
	require.NoError(t, err)

	tests := []struct {
		name string
		want string
	}{
		{"lodash", "https://reg.example.com/lodash"},
		{"@types/node", "https://reg.example.com/@types%2Fnode"},
	}
	for _, tt := range tests {
		u, err := r.PackumentURL("", tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, u.String())
	}
}

func TestPackumentURLInvalidName(t *testing.T) {
	r, err := NewRouter(nil)
	require.NoError(t, err)

	for _, name := range []string{"", "has space", "has\nnewline"} {
		_, err := r.PackumentURL("", name)
		var invalid *domain.InvalidPackageNameError
		require.True(t, errors.As(err, &invalid), "name %q should be rejected", name)
		assert.Equal(t, name, invalid.Name)
	}
}
