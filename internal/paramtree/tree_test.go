package paramtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTreeSeedsRunID(t *testing.T) {
	tree := NewTree("abc-123")
	v, ok := tree.Get(SplitPath("/run_id"))
	require.True(t, ok)
	assert.Equal(t, "abc-123", v)
}

func TestSetThenGetRoundTrips(t *testing.T) {
	tree := NewTree("run")
	tree.Set(SplitPath("/a/b/c"), int64(7))

	v, ok := tree.Get(SplitPath("/a/b/c"))
	require.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestSetThenDeleteThenHasIsFalse(t *testing.T) {
	tree := NewTree("run")
	tree.Set(SplitPath("/a/b"), "x")
	tree.Delete(SplitPath("/a/b"))

	assert.False(t, tree.Has(SplitPath("/a/b")))
}

func TestSetMapValueIsTraversable(t *testing.T) {
	tree := NewTree("run")
	tree.Set(SplitPath("/a"), map[string]any{"b": map[string]any{"c": int64(7)}})

	v, ok := tree.Get(SplitPath("/a/b/c"))
	require.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestSetReplacesScalarWithMap(t *testing.T) {
	tree := NewTree("run")
	tree.Set(SplitPath("/a"), int64(1))
	tree.Set(SplitPath("/a/b"), int64(2))

	_, ok := tree.Get(SplitPath("/a"))
	require.True(t, ok)

	v, ok := tree.Get(SplitPath("/a/b"))
	require.True(t, ok)
	assert.Equal(t, int64(2), v)
}

func TestGetMissingPathNotFound(t *testing.T) {
	tree := NewTree("run")
	_, ok := tree.Get(SplitPath("/nope"))
	assert.False(t, ok)
}

func TestDeleteEmptyPathResetsRoot(t *testing.T) {
	tree := NewTree("run")
	tree.Set(SplitPath("/a"), int64(1))
	tree.Delete(nil)

	assert.Empty(t, tree.Keys())
}

func TestKeysOnlyEnumeratesLeaves(t *testing.T) {
	tree := NewTree("run")
	tree.Set(SplitPath("/a/b"), int64(1))
	tree.Set(SplitPath("/a/c"), int64(2))

	keys := tree.Keys()
	assert.ElementsMatch(t, []string{"/run_id", "/a/b", "/a/c"}, keys)
	assert.False(t, tree.Has(SplitPath("/a")))
}

func TestHasMatchesKeysEnumeration(t *testing.T) {
	tree := NewTree("run")
	tree.Set(SplitPath("/a/b"), int64(1))

	assert.True(t, tree.Has(SplitPath("/a/b")))
	assert.False(t, tree.Has(SplitPath("/a")))
	assert.False(t, tree.Has(SplitPath("/missing")))
}

func TestSplitPathStripsLeadingSlash(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitPath("/a/b"))
	assert.Nil(t, SplitPath(""))
	assert.Nil(t, SplitPath("/"))
}
