package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger/internal/application/inventory"
	"github.com/jhoicas/pos-ledger/internal/domain"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

func saleInput(lines ...inventory.SaleLineInput) inventory.SaleInput {
	return inventory.SaleInput{
		CashierID:   "cajero-1",
		PaymentType: entity.PaymentCash,
		Lines:       lines,
	}
}

func line(id string, qty int) inventory.SaleLineInput {
	return inventory.SaleLineInput{ProductID: id, Quantity: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplySale
// ──────────────────────────────────────────────────────────────────────────────

func TestApplySale_DescuentaYRegistra(t *testing.T) {
	l, _, rec := newLedger(t,
		product(skuA, 30, entity.StatusInStock),
		product(skuB, 5, entity.StatusLowStock),
	)
	in := saleInput(line(skuA, 12), inventory.SaleLineInput{ProductID: skuB, Quantity: 5, UnitPrice: decimal.NewFromInt(4)})
	in.Discount = decimal.NewFromInt(10)

	res, err := l.ApplySale(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, res.Sale)
	require.Len(t, res.Lines, 2)

	// Precio cero toma el precio del producto (10); total (120 + 20) - 10%.
	assert.True(t, decimal.NewFromInt(10).Equal(res.Lines[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(126).Equal(res.Sale.Amount), "amount %s", res.Sale.Amount)

	qty, status := quantityOf(t, l, skuA)
	assert.Equal(t, 18, qty)
	assert.Equal(t, entity.StatusLowStock, status)
	qty, status = quantityOf(t, l, skuB)
	assert.Equal(t, 0, qty)
	assert.Equal(t, entity.StatusOutOfStock, status)
	assert.Equal(t, 17, rec.units[inventory.DirectionOut])

	detail, err := l.GetSale(context.Background(), res.Sale.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Lines, 2)
	assert.Empty(t, detail.Returns)
}

// A=5 pide 3 (ok), B=2 pide 5 (falla): ninguna línea se aplica.
func TestApplySale_LoteAtomico(t *testing.T) {
	l, _, rec := newLedger(t,
		product(skuA, 5, entity.StatusLowStock),
		product(skuB, 2, entity.StatusLowStock),
	)

	_, err := l.ApplySale(context.Background(), saleInput(line(skuA, 3), line(skuB, 5)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, skuB, se.ProductID)

	qty, _ := quantityOf(t, l, skuA)
	assert.Equal(t, 5, qty)
	qty, _ = quantityOf(t, l, skuB)
	assert.Equal(t, 2, qty)
	assert.Zero(t, rec.units[inventory.DirectionOut])
}

func TestApplySale_ProductoDesconocidoAbortaTodo(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 5, entity.StatusLowStock))

	_, err := l.ApplySale(context.Background(), saleInput(line(skuA, 1), line(skuC, 1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownSKU))
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, skuC, se.ProductID)

	qty, _ := quantityOf(t, l, skuA)
	assert.Equal(t, 5, qty)
}

func TestApplySale_EntradaInvalida(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 5, entity.StatusLowStock))
	ctx := context.Background()

	_, err := l.ApplySale(ctx, saleInput())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = l.ApplySale(ctx, saleInput(line(skuA, 1), line(skuA, 2)))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "producto repetido")

	_, err = l.ApplySale(ctx, saleInput(line(skuA, 0)))
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	bad := saleInput(line(skuA, 1))
	bad.PaymentType = "CHEQUE"
	_, err = l.ApplySale(ctx, bad)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateSale_AplicaSoloDiferencias(t *testing.T) {
	l, _, _ := newLedger(t,
		product(skuA, 30, entity.StatusInStock),
		product(skuB, 30, entity.StatusInStock),
		product(skuC, 30, entity.StatusInStock),
	)
	ctx := context.Background()
	sale, err := l.ApplySale(ctx, saleInput(line(skuA, 10), line(skuB, 10)))
	require.NoError(t, err)

	// A: 10 -> 4 (acredita 6); B eliminada (acredita 10); C nueva (descuenta 3).
	res, err := l.UpdateSale(ctx, sale.Sale.ID, saleInput(line(skuA, 4), line(skuC, 3)))
	require.NoError(t, err)
	require.Len(t, res.Lines, 2)
	assert.True(t, decimal.NewFromInt(70).Equal(res.Sale.Amount))

	qty, _ := quantityOf(t, l, skuA)
	assert.Equal(t, 26, qty)
	qty, _ = quantityOf(t, l, skuB)
	assert.Equal(t, 30, qty)
	qty, _ = quantityOf(t, l, skuC)
	assert.Equal(t, 27, qty)

	detail, err := l.GetSale(ctx, sale.Sale.ID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 2)
	assert.Equal(t, skuA, detail.Lines[0].ProductID)
	assert.Equal(t, 4, detail.Lines[0].Quantity)
	assert.Equal(t, skuC, detail.Lines[1].ProductID)
}

func TestUpdateSale_AumentoInsuficienteNoModificaNada(t *testing.T) {
	l, _, _ := newLedger(t,
		product(skuA, 12, entity.StatusLowStock),
		product(skuB, 30, entity.StatusInStock),
	)
	ctx := context.Background()
	sale, err := l.ApplySale(ctx, saleInput(line(skuA, 10), line(skuB, 10)))
	require.NoError(t, err)

	// B baja a 5 (válido) pero A sube en 5 con solo 2 disponibles.
	_, err = l.UpdateSale(ctx, sale.Sale.ID, saleInput(line(skuA, 15), line(skuB, 5)))
	require.Error(t, err)
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, domain.ErrInsufficientStock, se.Err)
	assert.Equal(t, 5, se.Requested)
	assert.Equal(t, 2, se.Available)

	qty, _ := quantityOf(t, l, skuA)
	assert.Equal(t, 2, qty)
	qty, _ = quantityOf(t, l, skuB)
	assert.Equal(t, 20, qty)
}

// La actualización compara contra las líneas guardadas y no descuenta devoluciones previas:
// vender 5, devolver 5 y actualizar a 1 acredita 4 unidades más.
func TestUpdateSale_IgnoraDevolucionesPrevias(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 20, entity.StatusInStock))
	ctx := context.Background()
	sale, err := l.ApplySale(ctx, saleInput(line(skuA, 5)))
	require.NoError(t, err)
	_, err = l.ApplyReturn(ctx, inventory.ReturnInput{
		SaleID: sale.Sale.ID,
		Lines:  []inventory.ReturnLineInput{{ProductID: skuA, Quantity: 5}},
	})
	require.NoError(t, err)
	qty, _ := quantityOf(t, l, skuA)
	require.Equal(t, 20, qty)

	_, err = l.UpdateSale(ctx, sale.Sale.ID, saleInput(line(skuA, 1)))
	require.NoError(t, err)
	qty, _ = quantityOf(t, l, skuA)
	assert.Equal(t, 24, qty)
}

func TestUpdateSale_VentaInexistente(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 12, entity.StatusLowStock))

	_, err := l.UpdateSale(context.Background(), "no-existe", saleInput(line(skuA, 1)))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = l.UpdateSale(context.Background(), "00000000-0000-0000-0000-0000000000ee", saleInput(line(skuA, 1)))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyReturn
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyReturn_AcreditaYRegistra(t *testing.T) {
	l, _, rec := newLedger(t, product(skuA, 20, entity.StatusInStock))
	ctx := context.Background()
	sale, err := l.ApplySale(ctx, saleInput(line(skuA, 4)))
	require.NoError(t, err)

	res, err := l.ApplyReturn(ctx, inventory.ReturnInput{
		SaleID: sale.Sale.ID,
		Lines:  []inventory.ReturnLineInput{{ProductID: skuA, Quantity: 3, Reason: "defectuoso"}},
	})
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "defectuoso", res.Lines[0].Reason)
	assert.Equal(t, 19, res.Stock[0].Quantity)
	assert.Equal(t, entity.StatusLowStock, res.Stock[0].Status)
	assert.Equal(t, 3, rec.units[inventory.DirectionIn])

	detail, err := l.GetSale(ctx, sale.Sale.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Returns, 1)
}

// Venta de 4 unidades; devolver 5 se rechaza y el stock no cambia.
func TestApplyReturn_ExcesoRechazado(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 20, entity.StatusInStock))
	ctx := context.Background()
	sale, err := l.ApplySale(ctx, saleInput(line(skuA, 4)))
	require.NoError(t, err)

	_, err = l.ApplyReturn(ctx, inventory.ReturnInput{
		SaleID: sale.Sale.ID,
		Lines:  []inventory.ReturnLineInput{{ProductID: skuA, Quantity: 5}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExcessReturn))
	qty, _ := quantityOf(t, l, skuA)
	assert.Equal(t, 16, qty)
}

func TestApplyReturn_LimiteAcumulado(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 20, entity.StatusInStock))
	ctx := context.Background()
	sale, err := l.ApplySale(ctx, saleInput(line(skuA, 4)))
	require.NoError(t, err)
	ret := func(q int) error {
		_, err := l.ApplyReturn(ctx, inventory.ReturnInput{
			SaleID: sale.Sale.ID,
			Lines:  []inventory.ReturnLineInput{{ProductID: skuA, Quantity: q}},
		})
		return err
	}

	require.NoError(t, ret(3))
	err = ret(2)
	require.Error(t, err)
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, domain.ErrExcessReturn, se.Err)
	assert.Equal(t, 1, se.Available)
	require.NoError(t, ret(1))

	qty, _ := quantityOf(t, l, skuA)
	assert.Equal(t, 20, qty)
}

func TestApplyReturn_ProductoFueraDeLaVentaAbortaTodo(t *testing.T) {
	l, _, _ := newLedger(t,
		product(skuA, 20, entity.StatusInStock),
		product(skuB, 20, entity.StatusInStock),
	)
	ctx := context.Background()
	sale, err := l.ApplySale(ctx, saleInput(line(skuA, 4)))
	require.NoError(t, err)

	_, err = l.ApplyReturn(ctx, inventory.ReturnInput{
		SaleID: sale.Sale.ID,
		Lines: []inventory.ReturnLineInput{
			{ProductID: skuA, Quantity: 1},
			{ProductID: skuB, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotInOriginalSale))

	qty, _ := quantityOf(t, l, skuA)
	assert.Equal(t, 16, qty)
	qty, _ = quantityOf(t, l, skuB)
	assert.Equal(t, 20, qty)
}

func TestApplyReturn_ProductoNoUUIDNoPerteneceALaVenta(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 20, entity.StatusInStock))
	ctx := context.Background()
	sale, err := l.ApplySale(ctx, saleInput(line(skuA, 4)))
	require.NoError(t, err)

	_, err = l.ApplyReturn(ctx, inventory.ReturnInput{
		SaleID: sale.Sale.ID,
		Lines:  []inventory.ReturnLineInput{{ProductID: "sku-a", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotInOriginalSale))
}

func TestApplyReturn_VentaInexistente(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 20, entity.StatusInStock))

	_, err := l.ApplyReturn(context.Background(), inventory.ReturnInput{
		SaleID: "no-existe",
		Lines:  []inventory.ReturnLineInput{{ProductID: skuA, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
