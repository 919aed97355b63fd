// Package catalog supplies the product records the storefront browses and
// the cart consumes. The admin back-office edits the same collection.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/kv"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
)

const productsKey = "catalog:products"

// Product is one cap in the shop.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"original_price,omitempty"`
	Images        []string `json:"images,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Stock         int      `json:"stock"`
	Active        bool     `json:"active"`
}

// DiscountPercent derives the displayed discount from the compare-at price.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice <= p.Price || p.OriginalPrice == 0 {
		return 0
	}
	return int(float64(p.OriginalPrice-p.Price) / float64(p.OriginalPrice) * 100)
}

// Service exposes catalog reads for the storefront and CRUD for the admin.
type Service interface {
	List(ctx context.Context) ([]Product, error)
	ListActive(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input ProductInput) (*Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"original_price"`
	Images        []string `json:"images"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Stock         int      `json:"stock"`
	Active        bool     `json:"active"`
}

type service struct {
	mu   sync.Mutex
	kv   kv.Store
	logg *logger.Logger
}

// NewService wires the catalog to the persistence layer and seeds the
// collection when it is absent.
func NewService(ctx context.Context, store kv.Store, logg *logger.Logger, seed []Product) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	s := &service{kv: store, logg: logg}
	if err := s.ensureSeeded(ctx, seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.load(ctx)
}

func (s *service) ListActive(ctx context.Context) ([]Product, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *service) Create(ctx context.Context, input ProductInput) (*Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	created := productFromInput(uuid.NewString(), input)
	all = append(all, created)
	if err := s.persist(ctx, all); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *service) Update(ctx context.Context, id string, input ProductInput) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].ID == id {
			all[i] = productFromInput(id, input)
			if err := s.persist(ctx, all); err != nil {
				return nil, err
			}
			return &all[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]Product, 0, len(all))
	for _, p := range all {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(all) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.persist(ctx, kept)
}

func (s *service) ensureSeeded(ctx context.Context, seed []Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.kv.Get(ctx, productsKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog")
	}

	if len(seed) == 0 {
		seed = DefaultSeed()
	}
	if s.logg != nil {
		s.logg.Info(ctx, "catalog.seeding")
	}
	return s.persist(ctx, seed)
}

func (s *service) load(ctx context.Context) ([]Product, error) {
	raw, err := s.kv.Get(ctx, productsKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []Product{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog")
	}

	var all []Product
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode catalog")
	}
	return all, nil
}

func (s *service) persist(ctx context.Context, all []Product) error {
	payload, err := json.Marshal(all)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode catalog")
	}
	if err := s.kv.Set(ctx, productsKey, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist catalog")
	}
	return nil
}

func validateInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price < 0 || input.OriginalPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product prices must be non-negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product stock must be non-negative")
	}
	return nil
}

func productFromInput(id string, input ProductInput) Product {
	return Product{
		ID:            id,
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Images:        input.Images,
		Sizes:         input.Sizes,
		Colors:        input.Colors,
		Stock:         input.Stock,
		Active:        input.Active,
	}
}
