package config

import (
	"errors"
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// ErrMissingSupabaseCredentials is returned when SUPABASE_URL or the API key
// is not set.
var ErrMissingSupabaseCredentials = errors.New("SUPABASE_URL and SUPABASE_ANON_KEY must be set")

// NewSupabaseClient initializes the Supabase client from the loaded
// configuration. It serves the resources table; the storage driver builds its
// own clients from StorageURL.
func NewSupabaseClient(cfg *Config) (*supa.Client, error) {
	if !cfg.HasSupabaseCredentials() {
		return nil, ErrMissingSupabaseCredentials
	}

	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("initialize supabase client: %w", err)
	}
	return client, nil
}
