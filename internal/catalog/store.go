package catalog

import (
	"context"
	"errors"
)

type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"required,gte=0.01,lte=9999999999.99,money"`
}

var ErrIDMismatch = errors.New("product id does not match addressed id")

type Store interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, bool, error)
	Insert(ctx context.Context, candidate Product) (Product, error)
	Replace(ctx context.Context, id int64, candidate Product) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
}
