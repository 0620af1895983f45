package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-ledger/internal/domain"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

// ReturnLineInput producto devuelto de una venta.
type ReturnLineInput struct {
	ProductID string
	Quantity  int
	Reason    string
}

// ReturnInput devolución sobre una venta existente.
type ReturnInput struct {
	SaleID string
	Lines  []ReturnLineInput
}

// ReturnResult líneas de devolución registradas y stock resultante.
type ReturnResult struct {
	SaleID string
	Lines  []*entity.ReturnLine
	Stock  []StockResult
}

func validateReturnInput(in ReturnInput) error {
	if in.SaleID == "" || len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(in.Lines))
	for _, line := range in.Lines {
		if line.ProductID == "" {
			return domain.ErrInvalidInput
		}
		if line.Quantity <= 0 {
			return &domain.StockError{Err: domain.ErrInvalidQuantity, ProductID: line.ProductID, Requested: line.Quantity}
		}
		if _, dup := seen[line.ProductID]; dup {
			return domain.ErrInvalidInput
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

// ApplyReturn acredita al stock los productos devueltos de una venta.
// Cada producto debe figurar en la venta original y lo devuelto (acumulado con devoluciones
// anteriores) no puede superar lo vendido. Todo o nada.
func (l *Ledger) ApplyReturn(ctx context.Context, in ReturnInput) (*ReturnResult, error) {
	if err := validateReturnInput(in); err != nil {
		return nil, l.finish(OpReturn, err, unitTally{})
	}
	if !validID(in.SaleID) {
		return nil, l.finish(OpReturn, domain.ErrNotFound, unitTally{})
	}

	res := ReturnResult{SaleID: in.SaleID}
	var t unitTally
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		// Bloquear la cabecera serializa devoluciones concurrentes de la misma venta.
		sale, err := r.Sales.GetForUpdate(ctx, in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		ids := make([]string, len(in.Lines))
		for i, line := range in.Lines {
			ids[i] = line.ProductID
			var sold *entity.SaleLine
			if validID(line.ProductID) {
				if sold, err = r.Sales.GetLine(ctx, in.SaleID, line.ProductID); err != nil {
					return err
				}
			}
			if sold == nil {
				return &domain.StockError{Err: domain.ErrNotInOriginalSale, ProductID: line.ProductID, Requested: line.Quantity}
			}
			returned, err := r.Returns.SumReturned(ctx, in.SaleID, line.ProductID)
			if err != nil {
				return err
			}
			if returned+line.Quantity > sold.Quantity {
				return &domain.StockError{Err: domain.ErrExcessReturn, ProductID: line.ProductID, Requested: line.Quantity, Available: sold.Quantity - returned}
			}
		}

		products, err := l.lockAll(ctx, r, ids)
		if err != nil {
			return err
		}
		now := l.now()
		for _, line := range in.Lines {
			p := products[line.ProductID]
			if err := l.creditInTx(ctx, r, p, line.Quantity, &t); err != nil {
				return err
			}
			rl := &entity.ReturnLine{
				ID:         uuid.New().String(),
				SaleID:     in.SaleID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				Reason:     line.Reason,
				ReturnedAt: now,
			}
			if err := r.Returns.Create(ctx, rl); err != nil {
				return err
			}
			res.Lines = append(res.Lines, rl)
			res.Stock = append(res.Stock, resultOf(p))
		}
		return nil
	})
	if err := l.finish(OpReturn, err, t); err != nil {
		return nil, err
	}
	return &res, nil
}
