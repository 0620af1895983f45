package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product y su stock embebido (DIP).
type ProductRepository interface {
	// GetByID devuelve (nil, nil) si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDsForUpdate bloquea las filas (SELECT FOR UPDATE) en orden ascendente de id.
	// Los ids inexistentes simplemente no aparecen en el resultado.
	GetByIDsForUpdate(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// UpdateStock persiste quantity, status, location, added_stock_amount y restock_date_time juntos.
	UpdateStock(ctx context.Context, p *entity.Product) error
	// ListForUpdate bloquea y devuelve todos los productos (barrido de reconciliación).
	ListForUpdate(ctx context.Context) ([]*entity.Product, error)
	// ListBelowQuantity productos con quantity < limit, ordenados por cantidad.
	ListBelowQuantity(ctx context.Context, limit int) ([]*entity.Product, error)
}
