package objectstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	storage_go "github.com/supabase-community/storage-go"
)

type storageCall struct {
	method      string
	path        string
	contentType string
	upsert      string
	auth        string
	apikey      string
	body        []byte
}

type fakeStorage struct {
	mu     sync.Mutex
	calls  []storageCall
	status int
	reply  string
}

func (f *fakeStorage) recorded() []storageCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]storageCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// newFakeStorage serves a minimal Supabase Storage API and returns a store
// pointed at it.
func newFakeStorage(t *testing.T) (*SupabaseStore, *fakeStorage) {
	t.Helper()
	fake := &fakeStorage{status: http.StatusOK, reply: `{"Key":"resources/ok"}`}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fake.mu.Lock()
		fake.calls = append(fake.calls, storageCall{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			upsert:      r.Header.Get("x-upsert"),
			auth:        r.Header.Get("Authorization"),
			apikey:      r.Header.Get("apikey"),
			body:        body,
		})
		status, reply := fake.status, fake.reply
		fake.mu.Unlock()

		if r.Method == http.MethodDelete && status < 400 {
			reply = `[]`
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	store, err := NewSupabaseStore(srv.URL+"/storage/v1", "anon-key", map[string]string{"apikey": "anon-key"}, "resources")
	require.NoError(t, err)
	return store, fake
}

func TestSupabaseStoreUpload(t *testing.T) {
	store, fake := newFakeStorage(t)

	err := store.Upload(context.Background(), "uploads/a.pdf", "application/pdf", strings.NewReader("%PDF-1.4"), 8)
	require.NoError(t, err)

	calls := fake.recorded()
	require.Len(t, calls, 1)
	call := calls[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/storage/v1/object/resources/uploads/a.pdf", call.path)
	assert.Equal(t, "application/pdf", call.contentType)
	assert.Equal(t, "false", call.upsert)
	assert.Equal(t, "Bearer anon-key", call.auth)
	assert.Equal(t, "anon-key", call.apikey)
	assert.Equal(t, "%PDF-1.4", string(call.body))
}

func TestSupabaseStoreRemoveAfterUploadSendsJSON(t *testing.T) {
	store, fake := newFakeStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "uploads/a.pdf", "application/pdf", strings.NewReader("x"), 1))
	require.NoError(t, store.Remove(ctx, "uploads/a.pdf"))

	calls := fake.recorded()
	require.Len(t, calls, 2)
	del := calls[1]
	assert.Equal(t, http.MethodDelete, del.method)
	assert.Equal(t, "/storage/v1/object/resources", del.path)
	assert.Equal(t, "application/json", del.contentType)
	assert.Empty(t, del.upsert)

	var sent struct {
		Prefixes []string `json:"prefixes"`
	}
	require.NoError(t, json.Unmarshal(del.body, &sent))
	assert.Equal(t, []string{"uploads/a.pdf"}, sent.Prefixes)
}

func TestSupabaseStoreUploadDuplicate(t *testing.T) {
	store, fake := newFakeStorage(t)
	fake.status = http.StatusConflict
	fake.reply = `{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`

	err := store.Upload(context.Background(), "uploads/a.pdf", "application/pdf", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Equal(t, "The resource already exists", err.Error())

	var storageErr *storage_go.StorageError
	assert.True(t, errors.As(err, &storageErr))
}

func TestSupabaseStoreConcurrentUploads(t *testing.T) {
	store, fake := newFakeStorage(t)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("uploads/%02d.bin", i)
			contentType := fmt.Sprintf("application/x-test-%02d", i)
			errs <- store.Upload(context.Background(), key, contentType, strings.NewReader(key), int64(len(key)))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	calls := fake.recorded()
	require.Len(t, calls, n)
	for _, call := range calls {
		id := strings.TrimSuffix(strings.TrimPrefix(call.path, "/storage/v1/object/resources/uploads/"), ".bin")
		assert.Equal(t, "application/x-test-"+id, call.contentType, call.path)
		assert.Equal(t, "uploads/"+id+".bin", string(call.body))
	}
}
