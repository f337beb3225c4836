package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/sangkips/restopos/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name              string
	SKU               string
	Price             decimal.Decimal
	Cost              decimal.Decimal
	Stock             int
	Category          string
	LowStockThreshold *int
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	var fields []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if input.Price.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "price", Message: "must not be negative"})
	}
	if input.Cost.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "cost", Message: "must not be negative"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields...)
	}

	// Auto-generate SKU if not provided
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		sku = "PRD-" + strings.ToUpper(uuid.New().String()[:8])
	}

	existing, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product SKU already exists")
	}

	product := &entity.Product{
		Name:              strings.TrimSpace(input.Name),
		SKU:               sku,
		Price:             input.Price.Round(2),
		Cost:              input.Cost.Round(2),
		Stock:             input.Stock,
		Category:          input.Category,
		LowStockThreshold: input.LowStockThreshold,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.Page[entity.Product], error) {
	params.Pagination = params.Pagination.Normalize()
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(products, params.Pagination, total), nil
}

// UpdateProductInput represents the update product input. Nil fields are
// left unchanged.
type UpdateProductInput struct {
	ID                uuid.UUID
	Name              *string
	SKU               *string
	Price             *decimal.Decimal
	Cost              *decimal.Decimal
	Stock             *int
	Category          *string
	LowStockThreshold *int
}

// UpdateProduct updates a product. Past sales keep the name and price they
// were sold with.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	// Check if new SKU is unique
	if input.SKU != nil && *input.SKU != product.SKU {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, apperror.NewFieldError("sku", "must not be empty")
		}
		existing, err := s.productRepo.GetBySKU(ctx, sku)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewConflictError("Product SKU already exists")
		}
		product.SKU = sku
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.NewFieldError("name", "must not be empty")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewFieldError("price", "must not be negative")
		}
		product.Price = input.Price.Round(2)
	}
	if input.Cost != nil {
		if input.Cost.IsNegative() {
			return nil, apperror.NewFieldError("cost", "must not be negative")
		}
		product.Cost = input.Cost.Round(2)
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = input.LowStockThreshold
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
