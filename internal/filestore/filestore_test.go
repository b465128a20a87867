package filestore

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveAndRead(t *testing.T) {
	store, err := New(t.TempDir())
	assert.NoError(t, err)

	content := []byte("%PDF-1.7 pretend paper body")
	locator, err := store.Save(content, "draft-v2.pdf")
	assert.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(locator))

	got, err := store.Read(locator)
	assert.NoError(t, err)
	assert.Equal(t, content, got)
	assert.True(t, store.Exists(locator))
}

func TestSave_GeneratesUniqueLocators(t *testing.T) {
	store, err := New(t.TempDir())
	assert.NoError(t, err)

	a, err := store.Save([]byte("one"), "paper.pdf")
	assert.NoError(t, err)
	b, err := store.Save([]byte("two"), "paper.pdf")
	assert.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHash_MatchesContentDigest(t *testing.T) {
	store, err := New(t.TempDir())
	assert.NoError(t, err)

	content := []byte("reproducible bytes")
	locator, err := store.Save(content, "data.bin")
	assert.NoError(t, err)

	sum := sha256.Sum256(content)
	want := hex.EncodeToString(sum[:])

	got, err := store.Hash(locator)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExists_FalseForMissing(t *testing.T) {
	store, err := New(t.TempDir())
	assert.NoError(t, err)

	assert.False(t, store.Exists(filepath.Join(t.TempDir(), "nope.pdf")))
}
