package wa_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/wa"
)

func TestValidSessionName(t *testing.T) {
	valid := []string{"personal", "work-2", "AR_sales", "a"}
	for _, name := range valid {
		assert.True(t, wa.ValidSessionName(name), "name=%q", name)
	}

	invalid := []string{"", "../etc", "a b", "name.db", "ñandú", "x/y"}
	for _, name := range invalid {
		assert.False(t, wa.ValidSessionName(name), "name=%q", name)
	}
}

func TestListSessions(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing Dir Is Empty", func(t *testing.T) {
		sessions, err := wa.ListSessions(filepath.Join(dir, "nope"))
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})

	t.Run("Only DB Files Counted", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "personal.db"), nil, 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "work.db"), nil, 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.db"), 0755))

		sessions, err := wa.ListSessions(dir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"personal", "work"}, sessions)
	})
}

func TestDeleteSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personal.db")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	require.NoError(t, wa.DeleteSession(dir, "personal"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op, not an error.
	assert.NoError(t, wa.DeleteSession(dir, "personal"))

	assert.Error(t, wa.DeleteSession(dir, "../outside"))
}
