package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// DefaultPrefix is the key prefix used when none is configured.
const DefaultPrefix = "opsboard:"

// Keyer maps a scope to its storage key.
// Implementations must be collision-free across scopes.
type Keyer interface {
	OrderKey(scope string) string
}

// DefaultKeyer produces keys of the form "<prefix>order:<scope>".
type DefaultKeyer struct {
	prefix string
}

// NewDefaultKeyer creates a keyer. An empty prefix selects DefaultPrefix.
func NewDefaultKeyer(prefix string) *DefaultKeyer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &DefaultKeyer{prefix: prefix}
}

// OrderKey returns the storage key for a scope's order record.
func (k *DefaultKeyer) OrderKey(scope string) string {
	return k.prefix + "order:" + scope
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, e.g.
// one namespace per user so that two users' dashboards never share a record.
//
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(""), "user:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer("")
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// OrderKey returns the prefixed storage key for a scope.
func (k *ScopedKeyer) OrderKey(scope string) string {
	return k.prefix + k.inner.OrderKey(scope)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
