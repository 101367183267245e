package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExtension(t *testing.T) {
	assert.Equal(t, ".wxml", NormalizeExtension("WXML"))
	assert.Equal(t, ".js", NormalizeExtension(" .js "))
	assert.Equal(t, "", NormalizeExtension(""))
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("/a/b/icon.PNG", ImageExtensions))
	assert.False(t, HasExtension("/a/b/icon.wxss", ImageExtensions))
	assert.True(t, HasExtension("x.ts", ScriptExtensions))
}

func TestDedupeAndWithout(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, DedupeStrings([]string{"a", "b", "a"}))
	assert.Equal(t, []string{"a", "c"}, Without([]string{"a", "b", "c"}, []string{"b"}))
	assert.Equal(t, []string{"x", "y"}, MapKeysSorted(map[string]bool{"y": true, "x": true}))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]int{"n": 1}))
	assert.Equal(t, "{\n  \"n\": 1\n}\n", buf.String())
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "graph.json")

	wrote, err := WriteIfChanged(path, []byte("a"))
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = WriteIfChanged(path, []byte("a"))
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = WriteIfChanged(path, []byte("b"))
	require.NoError(t, err)
	assert.True(t, wrote)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
}
