package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ledger/internal/domain/entity"
	"github.com/jhoicas/pos-ledger/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo persistencia de return_items (solo inserción).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create inserta una línea de devolución.
func (r *ReturnRepo) Create(ctx context.Context, l *entity.ReturnLine) error {
	query := `
		INSERT INTO return_items (id, sales_id, product_id, quantity, reason, returned_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, l.ID, l.SaleID, l.ProductID, l.Quantity, l.Reason, l.ReturnedAt); err != nil {
		return fmt.Errorf("insert return item: %w", err)
	}
	return nil
}

// SumReturned cantidad ya devuelta de un producto en una venta.
func (r *ReturnRepo) SumReturned(ctx context.Context, saleID, productID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM return_items WHERE sales_id = $1 AND product_id = $2`,
		saleID, productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum returned: %w", err)
	}
	return total, nil
}

// ListBySale devuelve las devoluciones de una venta en orden cronológico.
func (r *ReturnRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.ReturnLine, error) {
	query := `
		SELECT id, sales_id, product_id, quantity, reason, returned_at
		FROM return_items WHERE sales_id = $1 ORDER BY returned_at, id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()
	var out []*entity.ReturnLine
	for rows.Next() {
		var l entity.ReturnLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.Reason, &l.ReturnedAt); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
