package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ledger/internal/domain/entity"
	"github.com/jhoicas/pos-ledger/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo lectura de proveedores.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// GetByIDs resuelve varios proveedores en una sola consulta; los ausentes no aparecen en el mapa.
func (r *SupplierRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, email, contact, created_at FROM suppliers WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("get suppliers: %w", err)
	}
	defer rows.Close()
	out := make(map[string]*entity.Supplier, len(ids))
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Contact, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out[s.ID] = &s
	}
	return out, rows.Err()
}
