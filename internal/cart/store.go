package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/kv"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
)

const cartKeyPrefix = "cart:"

// Store persists carts in the key/value layer, one document per owner.
// Malformed persisted state is never surfaced: the corrupt entry is discarded
// and the owner starts over with an empty cart.
type Store struct {
	kv   kv.Store
	logg *logger.Logger
}

// NewStore wires the cart store to the persistence layer.
func NewStore(store kv.Store, logg *logger.Logger) (*Store, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	return &Store{kv: store, logg: logg}, nil
}

// Load rehydrates the owner's cart. Missing or unparseable data yields an
// empty cart; the invalid entry is cleared so the next load is clean.
func (s *Store) Load(ctx context.Context, owner string) Cart {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return Cart{}
	}

	raw, err := s.kv.Get(ctx, cartKey(owner))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) && s.logg != nil {
			s.logg.Error(ctx, "cart.load_failed", err)
		}
		return Cart{}
	}

	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithOwner(ctx, owner), "cart.reset_malformed")
		}
		if delErr := s.kv.Delete(ctx, cartKey(owner)); delErr != nil && s.logg != nil {
			s.logg.Error(ctx, "cart.clear_malformed_failed", delErr)
		}
		return Cart{}
	}

	return sanitize(items)
}

// Save serializes the full cart and overwrites the owner's stored copy.
func (s *Store) Save(ctx context.Context, owner string, c Cart) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}

	if c == nil {
		c = Cart{}
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serialize cart")
	}
	if err := s.kv.Set(ctx, cartKey(owner), payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}

// sanitize drops entries that violate the stored-cart invariants: no empty
// product ids, no zero or negative quantities, no negative prices.
func sanitize(items []LineItem) Cart {
	out := make(Cart, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			continue
		}
		if item.Quantity < 1 || item.UnitPrice < 0 {
			continue
		}
		out = append(out, item)
	}
	return out
}

func cartKey(owner string) string {
	return cartKeyPrefix + owner
}
