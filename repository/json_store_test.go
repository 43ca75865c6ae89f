package repository

import (
	"os"
	"path/filepath"
	"testing"

	"courtwatch-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	return NewJSONStore(filepath.Join(t.TempDir(), "decisions.json"))
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	store := tempJSONStore(t)

	_, err := store.Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestJSONStoreRewriteThenLoad(t *testing.T) {
	store := tempJSONStore(t)
	in := []models.Decision{sampleDecision(1), sampleDecision(2)}

	require.NoError(t, store.Rewrite(in))

	out, err := store.Load()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].OpinionID, out[0].OpinionID)
	assert.Equal(t, in[0].CaseName, out[0].CaseName)
	assert.Equal(t, in[1].Classification, out[1].Classification)
}

func TestJSONStoreRewriteReplacesDocument(t *testing.T) {
	store := tempJSONStore(t)
	require.NoError(t, store.Rewrite([]models.Decision{sampleDecision(1), sampleDecision(2), sampleDecision(3)}))
	require.NoError(t, store.Rewrite([]models.Decision{sampleDecision(9)}))

	out, err := store.Load()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(9), out[0].OpinionID)
}

func TestJSONStoreOmitsRawText(t *testing.T) {
	store := tempJSONStore(t)
	d := sampleDecision(1)
	d.RawText = "full opinion body that must never be persisted"

	require.NoError(t, store.Rewrite([]models.Decision{d}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "never be persisted")

	out, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, out[0].RawText)
}

func TestJSONStoreLoadCorruptFile(t *testing.T) {
	store := tempJSONStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0644))

	_, err := store.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}
