package repository

import (
	"context"

	"shop-service/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	Delete(ctx context.Context, id int) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	GetByID(ctx context.Context, id int) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id int) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) (*entity.Order, error)
	GetByID(ctx context.Context, id int) (*entity.Order, error)
	GetAll(ctx context.Context) ([]entity.Order, error)
	Delete(ctx context.Context, id int) error
}

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) (*entity.Client, error)
	GetByID(ctx context.Context, id int) (*entity.Client, error)
	GetAll(ctx context.Context) ([]entity.Client, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, client *entity.Client) (*entity.Client, error)
	Delete(ctx context.Context, id int) error
}
