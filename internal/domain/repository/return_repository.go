package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

// ReturnRepository persistencia de líneas de devolución (solo inserción).
type ReturnRepository interface {
	Create(ctx context.Context, line *entity.ReturnLine) error
	// SumReturned cantidad ya devuelta para (venta, producto).
	SumReturned(ctx context.Context, saleID, productID string) (int, error)
	ListBySale(ctx context.Context, saleID string) ([]*entity.ReturnLine, error)
}
