package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

// UnassignedSupplier nombre mostrado cuando el producto no tiene proveedor.
const UnassignedSupplier = "Sin proveedor"

// ReconcileResult resumen del barrido de estados.
type ReconcileResult struct {
	Scanned   int
	Corrected int
}

// Reconcile recalcula el estado de todos los productos y corrige los que no coinciden
// con su cantidad. Idempotente: una segunda ejecución no corrige nada.
func (l *Ledger) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	var res ReconcileResult
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		products, err := r.Products.ListForUpdate(ctx)
		if err != nil {
			return err
		}
		res.Scanned = len(products)
		for _, p := range products {
			if l.classifier.Classify(p.Quantity) == p.Status {
				continue
			}
			stale := p.Status
			if err := l.persist(ctx, r, p); err != nil {
				return err
			}
			res.Corrected++
			l.log.Debug().Str("product_id", p.ID).Str("from", string(stale)).Str("to", string(p.Status)).Msg("estado corregido")
		}
		return nil
	})
	if err := l.finish(OpReconcile, err, unitTally{}); err != nil {
		return nil, err
	}
	l.log.Info().Int("scanned", res.Scanned).Int("corrected", res.Corrected).Msg("reconciliación de estados")
	return &res, nil
}

// LowStockItem producto bajo el umbral con su proveedor resuelto.
// Supplier es nil cuando no hay proveedor asignado o la referencia no existe.
type LowStockItem struct {
	Product      *entity.Product
	Supplier     *entity.Supplier
	SupplierName string
}

// ListLowStock productos con cantidad por debajo del umbral (incluye agotados),
// resolviendo la referencia opcional al proveedor en una sola consulta.
func (l *Ledger) ListLowStock(ctx context.Context) ([]LowStockItem, error) {
	var items []LowStockItem
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		products, err := r.Products.ListBelowQuantity(ctx, l.classifier.Threshold())
		if err != nil {
			return err
		}
		set := make(map[string]struct{})
		for _, p := range products {
			if p.SupplierID != nil {
				set[*p.SupplierID] = struct{}{}
			}
		}
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		suppliers := map[string]*entity.Supplier{}
		if len(ids) > 0 {
			if suppliers, err = r.Suppliers.GetByIDs(ctx, ids); err != nil {
				return err
			}
		}
		items = make([]LowStockItem, 0, len(products))
		for _, p := range products {
			item := LowStockItem{Product: p, SupplierName: UnassignedSupplier}
			if p.SupplierID != nil {
				if s := suppliers[*p.SupplierID]; s != nil {
					item.Supplier = s
					item.SupplierName = s.Name
				}
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
