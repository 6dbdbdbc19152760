package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/url"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStore implements Store on a Supabase Storage bucket. The bucket is
// expected to be public so GetPublicUrl links resolve without signing.
//
// storage_go.Client keeps upload options (content-type, x-upsert) in headers
// shared by every request it sends, so each call gets its own client.
type SupabaseStore struct {
	storageURL string
	token      string
	headers    map[string]string
	bucket     string
}

// NewSupabaseStore returns a SupabaseStore for bucket. storageURL is the
// storage API base, usually SUPABASE_URL + "/storage/v1".
func NewSupabaseStore(storageURL, token string, headers map[string]string, bucket string) (*SupabaseStore, error) {
	if _, err := url.Parse(storageURL); err != nil {
		return nil, fmt.Errorf("parse storage url: %w", err)
	}
	return &SupabaseStore{
		storageURL: storageURL,
		token:      token,
		headers:    headers,
		bucket:     bucket,
	}, nil
}

func (s *SupabaseStore) client() *storage_go.Client {
	return storage_go.NewClient(s.storageURL, s.token, s.headers)
}

// Upload sends the file in one request. Upsert is off, so the service rejects
// a key that already exists instead of replacing it.
func (s *SupabaseStore) Upload(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	upsert := false
	_, err := s.client().UploadFile(s.bucket, key, body, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	return err
}

// PublicURL builds the public object URL for key.
func (s *SupabaseStore) PublicURL(key string) string {
	return s.client().GetPublicUrl(s.bucket, key).SignedURL
}

// Remove deletes key from the bucket.
func (s *SupabaseStore) Remove(_ context.Context, key string) error {
	_, err := s.client().RemoveFile(s.bucket, []string{key})
	return err
}
