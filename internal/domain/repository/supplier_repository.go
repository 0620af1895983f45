package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

// SupplierRepository lectura de proveedores (referencia opcional de Product).
type SupplierRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Supplier, error)
}
