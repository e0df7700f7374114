package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatName(t *testing.T) {
	assert.Equal(t, "cook_test_recipes_pea-soup", FlatName("https://cook.test/recipes/pea-soup/"))
	assert.Equal(t, "cook_test", FlatName("https://cook.test"))
	assert.Equal(t, "cook_test_a_b", FlatName("http://cook.test:8080/a/b?x=1"))
	assert.Equal(t, "not_a_url", FlatName("not a url"))
}

func TestWriteCard(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteCard("https://cook.test/recipes/soup", []byte("card"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir, "cook_test_recipes_soup.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "card", string(data))
}

func TestWriteBatchMirrorsPath(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "nested", "out"))
	require.NoError(t, err)

	path, err := w.WriteBatch("https://cook.test/recipes/soup/", []byte("x"), ".pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir, "cook_test", "recipes", "soup.pdf"), path)
	assert.FileExists(t, path)

	root, err := w.WriteBatch("https://cook.test/", []byte("x"), ".pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir, "cook_test", "index.pdf"), root)
}

func TestWriteBatchEscapesTraversal(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteBatch("https://cook.test/../../etc/passwd", []byte("x"), ".json")
	require.NoError(t, err)
	rel, err := filepath.Rel(w.Dir, path)
	require.NoError(t, err)
	assert.NotContains(t, rel, "..")
}
