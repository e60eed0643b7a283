package service

import (
	"context"

	"github.com/spec-kit/catalog-service/internal/cache"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
)

// ProductCreateInput carries fields for a new product.
type ProductCreateInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
}

// ProductUpdateInput carries optional field updates.
type ProductUpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
}

// ProductService provides catalog CRUD with a cache-aside read path; write
// paths publish events that drive cache invalidation.
type ProductService struct {
	repo       repository.ProductRepository
	cache      *cache.Store
	dispatcher events.Dispatcher
}

// NewProductService builds the service.
func NewProductService(repo repository.ProductRepository, store *cache.Store, dispatcher events.Dispatcher) *ProductService {
	return &ProductService{repo: repo, cache: store, dispatcher: dispatcher}
}

// Create persists a new product.
func (s *ProductService) Create(ctx context.Context, input ProductCreateInput) (*domain.Product, error) {
	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventProductCreated, product.ID, map[string]any{
		"name": product.Name,
	}))
	return product, nil
}

// Get returns a product by ID, serving from cache when possible.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	var cached domain.Product
	if s.cache.Get(ctx, cache.ProductKey(id), &cached) {
		return &cached, nil
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cache.ProductKey(id), product)
	return product, nil
}

// List returns products matching the filter.
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

// Update applies the provided fields and invalidates the cached entry.
func (s *ProductService) Update(ctx context.Context, id string, input ProductUpdateInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventProductUpdated, product.ID, nil))
	return product, nil
}

// Delete removes the product and invalidates its cache entry.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.dispatcher.Publish(ctx, events.New(events.EventProductDeleted, id, nil))
	return nil
}
