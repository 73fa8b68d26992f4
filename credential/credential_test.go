package credential

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/cronstorm/errors"
)

func TestFileStore_EmptyWhenMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "credentials.toml"))

	key, ok, err := store.Get()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, key)
}

func TestFileStore_SetThenGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cronstorm", "credentials.toml")
	store := NewFileStore(path)

	require.NoError(t, store.Set("first"))
	require.NoError(t, store.Set("second"))

	key, ok, err := store.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", key, "Set replaces the previous key")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FilePermissions), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "api_key")

	// A fresh store over the same file sees the persisted key
	key, ok, err = NewFileStore(path).Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", key)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_key = "), 0600))

	_, _, err := NewFileStore(path).Get()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse credential file")
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		override string
		stored   string
		want     string
	}{
		{"override wins", "override", "stored", "override"},
		{"stored used without override", "", "stored", "stored"},
		{"override used with nothing stored", "override", "", "override"},
		{"nothing anywhere is allowed", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore(tt.stored)

			got, err := Resolve(tt.override, store)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			after, _, _ := store.Get()
			assert.Equal(t, tt.stored, after, "override is never persisted")
		})
	}
}

type fakePrompter struct {
	answer string
	err    error
	labels []string
}

func (p *fakePrompter) PromptSecret(label string) (string, error) {
	p.labels = append(p.labels, label)
	return p.answer, p.err
}

func TestAcquire(t *testing.T) {
	t.Run("stores trimmed answer", func(t *testing.T) {
		store := NewMemoryStore("old")
		prompter := &fakePrompter{answer: "  new-key \n"}

		key, err := Acquire(prompter, store)
		require.NoError(t, err)
		assert.Equal(t, "new-key", key)
		assert.Equal(t, []string{AcquireLabel}, prompter.labels)

		stored, ok, _ := store.Get()
		assert.True(t, ok)
		assert.Equal(t, "new-key", stored)
	})

	t.Run("blank answer stores nothing", func(t *testing.T) {
		store := NewMemoryStore("old")

		_, err := Acquire(&fakePrompter{answer: "   "}, store)
		require.Error(t, err)
		assert.True(t, errors.IsCredentialMissingError(err))

		stored, _, _ := store.Get()
		assert.Equal(t, "old", stored)
	})

	t.Run("prompt failure", func(t *testing.T) {
		store := NewMemoryStore("")

		_, err := Acquire(&fakePrompter{err: errors.New("interrupted")}, store)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "interrupted")

		_, ok, _ := store.Get()
		assert.False(t, ok)
	})
}
