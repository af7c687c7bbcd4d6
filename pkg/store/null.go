package store

import "context"

// NullKV is a no-op KV that never stores anything.
// Useful when persistence should be disabled.
type NullKV struct{}

// NewNullKV creates a null KV.
func NewNullKV() KV {
	return &NullKV{}
}

// Get always returns a miss.
func (NullKV) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

// Set does nothing.
func (NullKV) Set(ctx context.Context, key, value string) error {
	return nil
}

// Close does nothing.
func (NullKV) Close() error {
	return nil
}

var _ KV = (*NullKV)(nil)
