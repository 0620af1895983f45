package inventory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger/internal/domain"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
	"github.com/jhoicas/pos-ledger/internal/domain/stock"
)

var maxDiscount = decimal.NewFromInt(100)

// SaleLineInput línea propuesta de venta. UnitPrice cero toma el precio del producto.
type SaleLineInput struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// SaleInput venta propuesta (nueva o reemplazo de una existente).
type SaleInput struct {
	CashierID   string
	CustomerID  *string
	PaymentType string
	Discount    decimal.Decimal
	Lines       []SaleLineInput
}

// SaleResult venta confirmada con sus líneas y el stock resultante por producto.
type SaleResult struct {
	Sale  *entity.Sale
	Lines []*entity.SaleLine
	Stock []StockResult
}

// SaleDetail venta con sus líneas y devoluciones registradas.
type SaleDetail struct {
	Sale    *entity.Sale
	Lines   []*entity.SaleLine
	Returns []*entity.ReturnLine
}

func validateSaleInput(in SaleInput) error {
	if in.CashierID == "" || len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	switch in.PaymentType {
	case entity.PaymentCash, entity.PaymentCreditCard, entity.PaymentDebitCard:
	default:
		return domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() || in.Discount.GreaterThan(maxDiscount) {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(in.Lines))
	for _, line := range in.Lines {
		if line.ProductID == "" || line.UnitPrice.IsNegative() {
			return domain.ErrInvalidInput
		}
		if line.Quantity <= 0 {
			return &domain.StockError{Err: domain.ErrInvalidQuantity, ProductID: line.ProductID, Requested: line.Quantity}
		}
		// Una línea por producto (clave única venta+producto).
		if _, dup := seen[line.ProductID]; dup {
			return domain.ErrInvalidInput
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

func saleLineIDs(lines []SaleLineInput) []string {
	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	return ids
}

func saleAmount(lines []*entity.SaleLine, discount decimal.Decimal) decimal.Decimal {
	amounts := make([]stock.SaleLineAmount, len(lines))
	for i, line := range lines {
		amounts[i] = stock.SaleLineAmount{Quantity: line.Quantity, UnitPrice: line.UnitPrice}
	}
	return stock.SaleAmount(amounts, discount)
}

func unitPriceFor(line SaleLineInput, p *entity.Product) decimal.Decimal {
	if line.UnitPrice.IsZero() {
		return p.Price
	}
	return line.UnitPrice
}

// ApplySale aplica una venta completa en una sola transacción:
// resolver todos los productos, validar todas las líneas, descontar y registrar.
// Si cualquier línea falla no se aplica ninguna.
func (l *Ledger) ApplySale(ctx context.Context, in SaleInput) (*SaleResult, error) {
	if err := validateSaleInput(in); err != nil {
		return nil, l.finish(OpSale, err, unitTally{})
	}

	var res SaleResult
	var t unitTally
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		// 1) Resolver
		products, err := l.lockAll(ctx, r, saleLineIDs(in.Lines))
		if err != nil {
			return err
		}
		// 2) Validar todo antes de tocar stock
		for _, line := range in.Lines {
			p := products[line.ProductID]
			if p.Quantity < line.Quantity {
				return &domain.StockError{Err: domain.ErrInsufficientStock, ProductID: p.ID, Requested: line.Quantity, Available: p.Quantity}
			}
		}
		// 3) Aplicar
		for _, line := range in.Lines {
			p := products[line.ProductID]
			if err := l.debitInTx(ctx, r, p, line.Quantity, &t); err != nil {
				return err
			}
			res.Stock = append(res.Stock, resultOf(p))
		}
		// 4) Registrar cabecera y líneas
		now := l.now()
		sale := &entity.Sale{
			ID:          uuid.New().String(),
			CustomerID:  in.CustomerID,
			CashierID:   in.CashierID,
			PaymentType: in.PaymentType,
			Completed:   true,
			Discount:    in.Discount,
			Time:        now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, line := range in.Lines {
			res.Lines = append(res.Lines, &entity.SaleLine{
				SaleID:    sale.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: unitPriceFor(line, products[line.ProductID]),
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		sale.Amount = saleAmount(res.Lines, in.Discount)
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}
		for _, line := range res.Lines {
			if err := r.Sales.CreateLine(ctx, line); err != nil {
				return err
			}
		}
		res.Sale = sale
		return nil
	})
	if err := l.finish(OpSale, err, t); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateSale reemplaza las líneas de una venta aplicando solo la diferencia por producto:
// los aumentos se validan antes de aplicar y se descuentan, las disminuciones se acreditan,
// las líneas eliminadas se acreditan completas. Todo en una transacción.
func (l *Ledger) UpdateSale(ctx context.Context, saleID string, in SaleInput) (*SaleResult, error) {
	if saleID == "" {
		return nil, l.finish(OpSaleUpdate, domain.ErrInvalidInput, unitTally{})
	}
	if !validID(saleID) {
		return nil, l.finish(OpSaleUpdate, domain.ErrNotFound, unitTally{})
	}
	if err := validateSaleInput(in); err != nil {
		return nil, l.finish(OpSaleUpdate, err, unitTally{})
	}

	var res SaleResult
	var t unitTally
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		sale, err := r.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		prevLines, err := r.Sales.ListLines(ctx, saleID)
		if err != nil {
			return err
		}
		prevByID := make(map[string]*entity.SaleLine, len(prevLines))
		for _, pl := range prevLines {
			prevByID[pl.ProductID] = pl
		}
		newIDs := make(map[string]struct{}, len(in.Lines))
		for _, line := range in.Lines {
			newIDs[line.ProductID] = struct{}{}
		}
		var removed []string
		for id := range prevByID {
			if _, kept := newIDs[id]; !kept {
				removed = append(removed, id)
			}
		}
		sort.Strings(removed)

		// Un solo lote de bloqueo para productos nuevos y eliminados.
		products, err := r.Products.GetByIDsForUpdate(ctx, lockOrder(append(saleLineIDs(in.Lines), removed...)))
		if err != nil {
			return err
		}
		for _, line := range in.Lines {
			if products[line.ProductID] == nil {
				return &domain.StockError{Err: domain.ErrUnknownSKU, ProductID: line.ProductID}
			}
		}

		// Validar aumentos netos antes de aplicar.
		for _, line := range in.Lines {
			delta := line.Quantity
			if pl, ok := prevByID[line.ProductID]; ok {
				delta -= pl.Quantity
			}
			p := products[line.ProductID]
			if delta > 0 && p.Quantity < delta {
				return &domain.StockError{Err: domain.ErrInsufficientStock, ProductID: p.ID, Requested: delta, Available: p.Quantity}
			}
		}

		now := l.now()
		for _, line := range in.Lines {
			p := products[line.ProductID]
			pl, existed := prevByID[line.ProductID]
			delta := line.Quantity
			if existed {
				delta -= pl.Quantity
			}
			switch {
			case delta > 0:
				err = l.debitInTx(ctx, r, p, delta, &t)
			case delta < 0:
				err = l.creditInTx(ctx, r, p, -delta, &t)
			}
			if err != nil {
				return err
			}
			if delta != 0 {
				res.Stock = append(res.Stock, resultOf(p))
			}

			price := unitPriceFor(line, p)
			if !existed {
				nl := &entity.SaleLine{SaleID: saleID, ProductID: line.ProductID, Quantity: line.Quantity, UnitPrice: price, CreatedAt: now, UpdatedAt: now}
				if err := r.Sales.CreateLine(ctx, nl); err != nil {
					return err
				}
				res.Lines = append(res.Lines, nl)
				continue
			}
			if delta != 0 || !pl.UnitPrice.Equal(price) {
				pl.Quantity = line.Quantity
				pl.UnitPrice = price
				pl.UpdatedAt = now
				if err := r.Sales.UpdateLine(ctx, pl); err != nil {
					return err
				}
			}
			res.Lines = append(res.Lines, pl)
		}

		for _, id := range removed {
			pl := prevByID[id]
			// Si el producto ya no existe no hay stock que acreditar.
			if p := products[id]; p != nil {
				if err := l.creditInTx(ctx, r, p, pl.Quantity, &t); err != nil {
					return err
				}
				res.Stock = append(res.Stock, resultOf(p))
			}
			if err := r.Sales.DeleteLine(ctx, saleID, id); err != nil {
				return err
			}
		}

		sale.CashierID = in.CashierID
		sale.CustomerID = in.CustomerID
		sale.PaymentType = in.PaymentType
		sale.Discount = in.Discount
		sale.Amount = saleAmount(res.Lines, in.Discount)
		sale.UpdatedAt = now
		if err := r.Sales.Update(ctx, sale); err != nil {
			return err
		}
		res.Sale = sale
		return nil
	})
	if err := l.finish(OpSaleUpdate, err, t); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetSale devuelve la venta con sus líneas y devoluciones.
func (l *Ledger) GetSale(ctx context.Context, saleID string) (*SaleDetail, error) {
	if !validID(saleID) {
		return nil, domain.ErrNotFound
	}
	var d SaleDetail
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		sale, err := r.Sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if d.Lines, err = r.Sales.ListLines(ctx, saleID); err != nil {
			return err
		}
		if d.Returns, err = r.Returns.ListBySale(ctx, saleID); err != nil {
			return err
		}
		d.Sale = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}
