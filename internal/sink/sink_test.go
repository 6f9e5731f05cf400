package sink_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/sink"
)

func TestOpen_DerivesPathFromInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "numbers.txt")

	w, err := sink.Open(input)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, filepath.Join(dir, "numbers_results.csv"), w.Path())

	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.Equal(t, "phone,validate\n", string(data))
}

func TestOpen_CollisionSuffixes(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "numbers.txt")

	t.Run("First Collision Picks 2", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "numbers_results.csv"), []byte("old\n"), 0644))

		w, err := sink.Open(input)
		require.NoError(t, err)
		defer w.Close()

		assert.Equal(t, filepath.Join(dir, "numbers_results2.csv"), w.Path())
	})

	t.Run("Second Collision Picks 3", func(t *testing.T) {
		w, err := sink.Open(input)
		require.NoError(t, err)
		defer w.Close()

		assert.Equal(t, filepath.Join(dir, "numbers_results3.csv"), w.Path())
	})
}

func TestOpen_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "numbers_results.csv")
	require.NoError(t, os.WriteFile(existing, []byte("phone,validate\n123,true\n"), 0644))

	w, err := sink.Open(filepath.Join(dir, "numbers.txt"))
	require.NoError(t, err)
	require.NoError(t, w.Append(sink.Record{Address: "456", Exists: false}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "phone,validate\n123,true\n", string(data), "pre-existing file must be untouched")
}

func TestAppend_RendersBoolTokens(t *testing.T) {
	dir := t.TempDir()

	w, err := sink.Open(filepath.Join(dir, "in.txt"))
	require.NoError(t, err)

	require.NoError(t, w.Append(sink.Record{Address: "5491122334455", Exists: true}))
	require.NoError(t, w.Append(sink.Record{Address: "5491199887766", Exists: false}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.Equal(t, "phone,validate\n5491122334455,true\n5491199887766,false\n", string(data))
}
