package store

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/opsboard/pkg/observability"
)

// OrderStore loads and saves card orders with best-effort semantics.
// It is safe for concurrent use when the underlying KV is.
type OrderStore struct {
	kv     KV
	keyer  Keyer
	logger *log.Logger
}

// Option configures an OrderStore.
type Option func(*OrderStore)

// WithKeyer sets the key naming scheme.
func WithKeyer(k Keyer) Option {
	return func(s *OrderStore) {
		if k != nil {
			s.keyer = k
		}
	}
}

// WithLogger sets the logger used to report swallowed failures.
func WithLogger(l *log.Logger) Option {
	return func(s *OrderStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewOrderStore creates an order store over kv. A nil kv behaves like NullKV.
func NewOrderStore(kv KV, opts ...Option) *OrderStore {
	if kv == nil {
		kv = NewNullKV()
	}
	s := &OrderStore{
		kv:     kv,
		keyer:  NewDefaultKeyer(""),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key for scope.
func (s *OrderStore) Key(scope string) string {
	return s.keyer.OrderKey(scope)
}

// Load returns the stored order for scope, or nil when nothing usable is
// stored. Backend errors, panics and undecodable values all read as nil.
func (s *OrderStore) Load(ctx context.Context, scope string) []string {
	key := s.Key(scope)

	var raw string
	var ok bool
	err := guard(func() error {
		var err error
		raw, ok, err = s.kv.Get(ctx, key)
		return err
	})
	if err != nil {
		s.logger.Warn("order read failed, using registry order", "scope", scope, "err", err)
		observability.Store().OnLoad(ctx, scope, 0, err)
		return nil
	}
	if !ok {
		s.logger.Debug("no stored order", "scope", scope)
		observability.Store().OnLoad(ctx, scope, 0, nil)
		return nil
	}

	ids, err := decodeOrder(raw)
	if err != nil {
		s.logger.Warn("stored order is corrupted, ignoring it", "scope", scope, "err", err)
		observability.Store().OnLoad(ctx, scope, 0, err)
		return nil
	}
	s.logger.Debug("loaded order", "scope", scope, "cards", len(ids))
	observability.Store().OnLoad(ctx, scope, len(ids), nil)
	return ids
}

// Save overwrites the stored order for scope. A failed write is logged and
// dropped; there are no retries.
func (s *OrderStore) Save(ctx context.Context, scope string, ids []string) {
	value, err := encodeOrder(ids)
	if err == nil {
		err = guard(func() error {
			return s.kv.Set(ctx, s.Key(scope), value)
		})
	}
	if err != nil {
		s.logger.Warn("order write failed, keeping in-memory order", "scope", scope, "err", err)
	} else {
		s.logger.Debug("saved order", "scope", scope, "cards", len(ids))
	}
	observability.Store().OnSave(ctx, scope, len(ids), err)
}

// Close closes the underlying KV.
func (s *OrderStore) Close() error {
	return s.kv.Close()
}
