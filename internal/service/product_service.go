package service

import (
	"context"
	"fmt"

	"techmarket/internal/domain"
	"techmarket/internal/repository"

	"go.uber.org/zap"
)

// ProductService runs the list and management operations. Every call is a
// single store round trip guarded by client-side field checks.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, form domain.ProductForm) (*domain.Product, error)
	Update(ctx context.Context, form domain.ProductForm) ([]*domain.Product, error)
	Delete(ctx context.Context, form domain.ProductForm) ([]*domain.Product, error)
}

type productService struct {
	productRepo     repository.ProductRepository
	defaultCategory string
	logger          *zap.Logger
}

// NewProductService creates a new instance of ProductService. New products
// are stored with defaultCategory.
func NewProductService(productRepo repository.ProductRepository, defaultCategory string, logger *zap.Logger) ProductService {
	return &productService{
		productRepo:     productRepo,
		defaultCategory: defaultCategory,
		logger:          logger,
	}
}

// List fetches every product ordered by id
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.ListOrdered(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch products", zap.Error(err))
		return nil, err
	}
	return products, nil
}

// Create validates the form and inserts a new product
func (s *productService) Create(ctx context.Context, form domain.ProductForm) (*domain.Product, error) {
	if !form.Complete() {
		return nil, invalid("", MsgCreateFieldsRequired)
	}

	price, ok := domain.ParsePrice(form.Price)
	if !ok {
		return nil, invalid("price", MsgInvalidPrice)
	}

	product := &domain.Product{
		Title:       form.Title,
		Price:       price,
		Description: form.Description,
		Category:    s.defaultCategory,
		Image:       form.Image,
	}

	if err := s.productRepo.Insert(ctx, product); err != nil {
		s.logger.Error("Failed to add product", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product added", zap.Int64("product_id", product.ID))
	return product, nil
}

// Update applies the filled fields of the form to the product named by its id
func (s *productService) Update(ctx context.Context, form domain.ProductForm) ([]*domain.Product, error) {
	patch, ok := form.Patch()
	if !ok {
		return nil, invalid("price", MsgInvalidPrice)
	}
	if patch.IsEmpty() {
		return nil, invalid("", MsgUpdateFieldsRequired)
	}

	id, ok := domain.ParseProductID(form.ID)
	if !ok {
		return nil, invalid("id", MsgInvalidUpdateID)
	}

	updated, err := s.productRepo.UpdateByID(ctx, id, patch)
	if err != nil {
		s.logger.Error("Failed to update product", zap.Int64("product_id", id), zap.Error(err))
		return nil, err
	}

	if len(updated) == 0 {
		s.logger.Warn("No product matched update", zap.Int64("product_id", id))
		return nil, fmt.Errorf("update product %d: %w", id, ErrNotFound)
	}

	s.logger.Info("Product updated",
		zap.Int64("product_id", id),
		zap.Strings("columns", patch.Columns()),
	)
	return updated, nil
}

// Delete removes the product named by the form's id
func (s *productService) Delete(ctx context.Context, form domain.ProductForm) ([]*domain.Product, error) {
	id, ok := domain.ParseProductID(form.ID)
	if !ok {
		return nil, invalid("id", MsgInvalidDeleteID)
	}

	deleted, err := s.productRepo.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return nil, err
	}

	if len(deleted) == 0 {
		s.logger.Warn("No product matched delete", zap.Int64("product_id", id))
		return nil, fmt.Errorf("delete product %d: %w", id, ErrNotFound)
	}

	s.logger.Info("Product deleted", zap.Int64("product_id", id))
	return deleted, nil
}
