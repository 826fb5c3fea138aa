package service

import (
	"context"
	"fmt"

	"shop-service/internal/entity"
	"shop-service/internal/repository"
)

type ProductService struct {
	products repository.ProductRepository
	users    repository.UserRepository
}

func NewProductService(products repository.ProductRepository, users repository.UserRepository) *ProductService {
	return &ProductService{products: products, users: users}
}

// CreateProduct validates the fields, checks the seller exists and persists
// the product.
func (s *ProductService) CreateProduct(ctx context.Context, name string, price float64, stock, sellerID int) (*entity.Product, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: product name required", repository.ErrInvalidInput)
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: product price must be positive", repository.ErrInvalidInput)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: product stock cannot be negative", repository.ErrInvalidInput)
	}

	if _, err := s.users.GetByID(ctx, sellerID); err != nil {
		return nil, err
	}

	product := &entity.Product{Name: name, Price: price, Stock: stock, SellerID: sellerID}
	created, err := s.products.Create(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}

	return created, nil
}

// UpdateProduct applies a partial update: nil fields are left unchanged.
func (s *ProductService) UpdateProduct(ctx context.Context, id int, name *string, price *float64, stock *int) (*entity.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, fmt.Errorf("%w: product name required", repository.ErrInvalidInput)
		}
		product.Name = *name
	}
	if price != nil {
		if *price <= 0 {
			return nil, fmt.Errorf("%w: product price must be positive", repository.ErrInvalidInput)
		}
		product.Price = *price
	}
	if stock != nil {
		if *stock < 0 {
			return nil, fmt.Errorf("%w: product stock cannot be negative", repository.ErrInvalidInput)
		}
		product.Stock = *stock
	}

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating product %d", id)
		return nil, err
	}

	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.products.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d", id)
		return err
	}
	return nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing products")
		return nil, err
	}
	return products, nil
}
