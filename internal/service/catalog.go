package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/repository"
	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/pagination"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/slug"
)

// ProductInput holds the parameters for creating or updating a product.
type ProductInput struct {
	Name           string            `json:"name" validate:"required"`
	Description    string            `json:"description"`
	Price          int64             `json:"price" validate:"gte=0"`
	Category       string            `json:"category"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
}

// CatalogService implements the business logic for the product catalog.
type CatalogService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// AddProduct creates a new catalog entry with a slug derived from its name.
func (s *CatalogService) AddProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:             uuid.New().String(),
		Name:           input.Name,
		Slug:           slug.Generate(input.Name),
		Description:    input.Description,
		Price:          input.Price,
		Category:       input.Category,
		Images:         input.Images,
		Specifications: input.Specifications,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product added",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// GetProduct retrieves a product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

// ListProducts returns a page of products newest first.
func (s *CatalogService) ListProducts(ctx context.Context, page, perPage int) (pagination.Result[*domain.Product], error) {
	params := pagination.New(page, perPage)

	products, total, err := s.repo.List(ctx, params)
	if err != nil {
		return pagination.Result[*domain.Product]{}, fmt.Errorf("list products: %w", err)
	}

	return pagination.NewResult(products, total, params), nil
}

// ListAllProducts returns the whole catalog newest first, walking pages
// internally. The storefront's product grid asks for everything at once.
func (s *CatalogService) ListAllProducts(ctx context.Context) ([]*domain.Product, error) {
	all := make([]*domain.Product, 0)
	for page := 1; ; page++ {
		products, total, err := s.repo.List(ctx, pagination.New(page, pagination.MaxPerPage))
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		all = append(all, products...)
		if len(products) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

// Categories returns the distinct categories present in the catalog.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// UpdateProduct replaces a product's editable fields. The slug follows the
// name.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	product.Name = input.Name
	product.Slug = slug.Generate(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Specifications != nil {
		product.Specifications = input.Specifications
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", id),
	)

	return product, nil
}

// DeleteProduct removes a catalog entry. Carts that referenced it keep their
// stored snapshots.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}
