package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSlip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalSlipStore(filepath.Join(dir, "slips"))
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "TT000000000000001", "slip.jpg", strings.NewReader("image bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "TT000000000000001_"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestSaveSlipRejectsUnsupportedType(t *testing.T) {
	store, err := NewLocalSlipStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "TT1", "slip.pdf", strings.NewReader("x"))
	assert.Error(t, err)

	_, err = store.Save(context.Background(), "TT1", "slip.exe", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestSaveSlipUniqueNames(t *testing.T) {
	store, err := NewLocalSlipStore(t.TempDir())
	require.NoError(t, err)

	p1, err := store.Save(context.Background(), "TT1", "slip.png", strings.NewReader("a"))
	require.NoError(t, err)
	p2, err := store.Save(context.Background(), "TT1", "slip.png", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}
