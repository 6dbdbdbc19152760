package objectstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyKeepsExtensionUnderFolder(t *testing.T) {
	key := NewKey("uploads", "notes.pdf")

	require.True(t, strings.HasPrefix(key, "uploads/"), key)
	require.True(t, strings.HasSuffix(key, ".pdf"), key)

	id := strings.TrimSuffix(strings.TrimPrefix(key, "uploads/"), ".pdf")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestNewKeyVariants(t *testing.T) {
	tests := []struct {
		name     string
		folder   string
		filename string
		prefix   string
		suffix   string
	}{
		{"no extension", "uploads", "README", "uploads/", ""},
		{"last extension only", "uploads", "archive.tar.gz", "uploads/", ".gz"},
		{"extension case kept", "uploads", "Scan.PNG", "uploads/", ".PNG"},
		{"slashes trimmed", "/uploads/", "a.txt", "uploads/", ".txt"},
		{"no folder", "", "a.txt", "", ".txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewKey(tt.folder, tt.filename)
			assert.True(t, strings.HasPrefix(key, tt.prefix), key)
			assert.True(t, strings.HasSuffix(key, tt.suffix), key)
			assert.False(t, strings.HasPrefix(key, "/"), key)
			assert.NotContains(t, key, "//")
		})
	}
}

func TestNewKeyIsFreshEachCall(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		key := NewKey("uploads", "notes.pdf")
		_, dup := seen[key]
		require.False(t, dup, "duplicate key %s", key)
		seen[key] = struct{}{}
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", ContentType("data.csv", "text/csv"))
	assert.Equal(t, "application/pdf", ContentType("notes.pdf", ""))
	assert.Equal(t, "application/pdf", ContentType("notes.PDF", "application/octet-stream"))
	assert.Equal(t, "application/octet-stream", ContentType("blob", ""))
	assert.Equal(t, "application/octet-stream", ContentType("blob.unknownext", "application/octet-stream"))
}

func TestMinioStorePublicURL(t *testing.T) {
	store, err := NewMinioStore("localhost:9000", "minio", "minio123", "resources", "https://files.example.com/", false)
	require.NoError(t, err)

	assert.Equal(t, "https://files.example.com/resources/uploads/a.pdf", store.PublicURL("uploads/a.pdf"))
}

func TestMinioStoreWithoutPublicURLHasNoLinks(t *testing.T) {
	store, err := NewMinioStore("localhost:9000", "minio", "minio123", "resources", "", false)
	require.NoError(t, err)

	assert.Equal(t, "", store.PublicURL("uploads/a.pdf"))
}

func TestSupabaseStorePublicURL(t *testing.T) {
	store, err := NewSupabaseStore("https://project.supabase.co/storage/v1", "anon-key", nil, "resources")
	require.NoError(t, err)

	url := store.PublicURL("uploads/a.pdf")
	assert.True(t, strings.HasPrefix(url, "https://project.supabase.co/storage/v1/"), url)
	assert.Contains(t, url, "/public/resources/uploads/a.pdf")
}

func TestUnavailableStore(t *testing.T) {
	store := Unavailable(errors.New("missing credentials"))

	err := store.Upload(context.Background(), "uploads/a.pdf", "application/pdf", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Contains(t, err.Error(), "missing credentials")
	assert.Equal(t, "", store.PublicURL("uploads/a.pdf"))
	assert.ErrorIs(t, store.Remove(context.Background(), "uploads/a.pdf"), ErrNotConfigured)
}
