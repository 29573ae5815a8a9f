package cache

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAndOpen(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	assert.False(t, c.Has("lodash", "1.0.0"))

	path, size, err := c.Store("lodash", "1.0.0",
		"https://reg.example.com/lodash", "sha512-abc",
		strings.NewReader("tarball bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("tarball bytes")), size)
	assert.Equal(t, c.Path("lodash", "1.0.0"), path)

	assert.True(t, c.Has("lodash", "1.0.0"))

	r, err := c.Open("lodash", "1.0.0")
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "tarball bytes", string(data))
}

func TestStoreScopedName(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	_, _, err = c.Store("@types/node", "20.0.0", "", "", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, c.Has("@types/node", "20.0.0"))
}

func TestSizeAndClear(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	size, err := c.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)

	_, _, err = c.Store("a", "1.0.0", "", "", strings.NewReader("12345"))
	require.NoError(t, err)
	_, _, err = c.Store("b", "2.0.0", "", "", strings.NewReader("123"))
	require.NoError(t, err)

	size, err = c.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)

	require.NoError(t, c.Clear())
	assert.False(t, c.Has("a", "1.0.0"))
	assert.False(t, c.Has("b", "2.0.0"))

	size, err = c.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)
}

func TestStoreOverwrite(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	_, _, err = c.Store("a", "1.0.0", "", "", strings.NewReader("old"))
	require.NoError(t, err)
	_, _, err = c.Store("a", "1.0.0", "", "", strings.NewReader("newer"))
	require.NoError(t, err)

	r, err := c.Open("a", "1.0.0")
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "newer", string(data))
}
