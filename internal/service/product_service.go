package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopline/catalog-service/internal/domain"
	"github.com/shopline/catalog-service/internal/events"
	"github.com/shopline/catalog-service/internal/repository"
	apperrors "github.com/shopline/catalog-service/pkg/util/errorutil"
)

const (
	productResource     = "product"
	productDuplicateMsg = "product already exists"
)

// ProductService coordinates product persistence.
type ProductService struct {
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProductService builds the service. dispatcher may be nil.
func NewProductService(products repository.ProductRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{products: products, dispatcher: dispatcher, logger: logger}
}

// List returns products whose title contains titleFilter.
func (s *ProductService) List(ctx context.Context, titleFilter string) ([]domain.Product, error) {
	products, err := s.products.Find(ctx, titleFilter)
	if err != nil {
		return nil, translate(err, productResource, productDuplicateMsg)
	}
	return products, nil
}

// Get returns one product by external id.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, productResource, productDuplicateMsg)
	}
	return product, nil
}

// Create stores a new product under a freshly generated external id.
func (s *ProductService) Create(ctx context.Context, input domain.ProductPatch) (*domain.Product, error) {
	if input.Title == nil || input.Price == nil {
		return nil, apperrors.NewValidationError("title and price required", nil)
	}
	product := &domain.Product{
		ID:    uuid.NewString(),
		Title: *input.Title,
		Price: *input.Price,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, translate(err, productResource, productDuplicateMsg)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventProductCreated, product.ID, input.Fields()))
	return product, nil
}

// Update applies the supplied fields and returns the stored result.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	product, err := s.products.Update(ctx, id, patch)
	if err != nil {
		return nil, translate(err, productResource, productDuplicateMsg)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventProductUpdated, product.ID, patch.Fields()))
	return product, nil
}

// Delete removes a product; a missing product is reported as not found.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return translate(err, productResource, productDuplicateMsg)
	}
	if !deleted {
		return apperrors.NewNotFound(productResource, nil)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventProductDeleted, id, nil))
	return nil
}
