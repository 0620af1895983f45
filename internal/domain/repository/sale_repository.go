package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

// SaleRepository persistencia de la cabecera de venta y sus líneas (product_sales).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	Update(ctx context.Context, sale *entity.Sale) error
	// GetByID devuelve (nil, nil) si la venta no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)

	ListLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error)
	// GetLine devuelve (nil, nil) si el producto no pertenece a la venta.
	GetLine(ctx context.Context, saleID, productID string) (*entity.SaleLine, error)
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	UpdateLine(ctx context.Context, line *entity.SaleLine) error
	DeleteLine(ctx context.Context, saleID, productID string) error
}
