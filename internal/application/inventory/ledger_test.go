package inventory_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger/internal/application/inventory"
	"github.com/jhoicas/pos-ledger/internal/domain"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
	"github.com/jhoicas/pos-ledger/internal/domain/stock"
	"github.com/jhoicas/pos-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/pos-ledger/pkg/logger"
)

const (
	skuA = "00000000-0000-0000-0000-00000000000a"
	skuB = "00000000-0000-0000-0000-00000000000b"
	skuC = "00000000-0000-0000-0000-00000000000c"
)

// recorder captura observaciones para verificar que las métricas solo cuentan lo confirmado.
type recorder struct {
	mu    sync.Mutex
	ops   map[string][]error
	units map[string]int
}

func newRecorder() *recorder {
	return &recorder{ops: map[string][]error{}, units: map[string]int{}}
}

func (r *recorder) ObserveOperation(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[op] = append(r.ops[op], err)
}

func (r *recorder) ObserveUnits(direction string, qty int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[direction] += qty
}

func product(id string, qty int, status entity.StockStatus) entity.Product {
	return entity.Product{
		ID:       id,
		Name:     "Producto " + id[len(id)-1:],
		Price:    decimal.NewFromInt(10),
		Quantity: qty,
		Status:   status,
		Location: "A1",
	}
}

func newLedger(t *testing.T, products ...entity.Product) (*inventory.Ledger, *memory.Store, *recorder) {
	t.Helper()
	store := memory.NewStore()
	store.SeedProducts(products...)
	classifier, err := stock.NewClassifier(stock.DefaultLowStockThreshold)
	require.NoError(t, err)
	rec := newRecorder()
	return inventory.NewLedger(store, classifier, rec, logger.Nop()), store, rec
}

func quantityOf(t *testing.T, l *inventory.Ledger, id string) (int, entity.StockStatus) {
	t.Helper()
	p, err := l.GetStock(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity, p.Status
}

// ──────────────────────────────────────────────────────────────────────────────
// Debit / Credit
// ──────────────────────────────────────────────────────────────────────────────

func TestDebit_DescuentaYReclasifica(t *testing.T) {
	l, _, rec := newLedger(t, product(skuA, 25, entity.StatusInStock))

	res, err := l.Debit(context.Background(), skuA, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, res.Quantity)
	assert.Equal(t, entity.StatusLowStock, res.Status)
	assert.Equal(t, 10, rec.units[inventory.DirectionOut])
}

func TestDebit_InsuficienteNoModifica(t *testing.T) {
	l, _, rec := newLedger(t, product(skuA, 3, entity.StatusLowStock))

	_, err := l.Debit(context.Background(), skuA, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, skuA, se.ProductID)
	assert.Equal(t, 4, se.Requested)
	assert.Equal(t, 3, se.Available)

	qty, status := quantityOf(t, l, skuA)
	assert.Equal(t, 3, qty)
	assert.Equal(t, entity.StatusLowStock, status)
	assert.Zero(t, rec.units[inventory.DirectionOut])
}

func TestDebitCredit_IdaYVuelta(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 20, entity.StatusInStock))
	ctx := context.Background()

	_, err := l.Debit(ctx, skuA, 20)
	require.NoError(t, err)
	qty, status := quantityOf(t, l, skuA)
	assert.Equal(t, 0, qty)
	assert.Equal(t, entity.StatusOutOfStock, status)

	_, err = l.Credit(ctx, skuA, 20)
	require.NoError(t, err)
	qty, status = quantityOf(t, l, skuA)
	assert.Equal(t, 20, qty)
	assert.Equal(t, entity.StatusInStock, status)
}

// Débitos concurrentes sobre el mismo producto: nunca negativo, sin actualizaciones perdidas.
func TestDebit_ConcurrenteSinNegativos(t *testing.T) {
	l, _, rec := newLedger(t, product(skuA, 20, entity.StatusInStock))

	var ok, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Debit(context.Background(), skuA, 1)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(20), ok.Load())
	assert.Equal(t, int32(10), rejected.Load())
	qty, status := quantityOf(t, l, skuA)
	assert.Equal(t, 0, qty)
	assert.Equal(t, entity.StatusOutOfStock, status)
	assert.Equal(t, 20, rec.units[inventory.DirectionOut])
}

func TestDebit_CantidadNoPositiva(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 5, entity.StatusLowStock))

	_, err := l.Debit(context.Background(), skuA, 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
	_, err = l.Credit(context.Background(), skuA, -2)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
}

func TestDebit_ProductoDesconocido(t *testing.T) {
	l, _, rec := newLedger(t)

	_, err := l.Debit(context.Background(), skuA, 1)
	assert.True(t, errors.Is(err, domain.ErrUnknownSKU))
	require.Len(t, rec.ops[inventory.OpDebit], 1)
	assert.Error(t, rec.ops[inventory.OpDebit][0])
}

func TestCredit_SinLimiteSuperior(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 0, entity.StatusOutOfStock))

	res, err := l.Credit(context.Background(), skuA, 100000)
	require.NoError(t, err)
	assert.Equal(t, 100000, res.Quantity)
	assert.Equal(t, entity.StatusInStock, res.Status)
}

// Un crédito que haría desbordar la cantidad se rechaza sin modificar el stock.
func TestCredit_DesbordeRechazado(t *testing.T) {
	l, _, rec := newLedger(t, product(skuA, 5, entity.StatusLowStock))
	ctx := context.Background()

	_, err := l.Credit(ctx, skuA, math.MaxInt)
	require.Error(t, err)
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, domain.ErrInvalidQuantity, se.Err)
	assert.Equal(t, stock.MaxQuantity-5, se.Available)
	qty, status := quantityOf(t, l, skuA)
	assert.Equal(t, 5, qty)
	assert.Equal(t, entity.StatusLowStock, status)
	assert.Zero(t, rec.units[inventory.DirectionIn])

	res, err := l.Credit(ctx, skuA, stock.MaxQuantity-5)
	require.NoError(t, err)
	assert.Equal(t, stock.MaxQuantity, res.Quantity)

	_, err = l.Credit(ctx, skuA, 1)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
	qty, _ = quantityOf(t, l, skuA)
	assert.Equal(t, stock.MaxQuantity, qty)
}

func TestAdjust_SobreMaximoRechazado(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 4, entity.StatusLowStock))

	_, err := l.Adjust(context.Background(), inventory.AdjustInput{ProductID: skuA, NewQuantity: stock.MaxQuantity + 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
	qty, _ := quantityOf(t, l, skuA)
	assert.Equal(t, 4, qty)
}

// Un id sin forma de UUID no puede existir: se responde UNKNOWN_SKU sin consultar el almacén.
func TestDebit_IDNoUUIDEsProductoDesconocido(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 5, entity.StatusLowStock))
	ctx := context.Background()

	_, err := l.Debit(ctx, "sku-a", 1)
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, domain.ErrUnknownSKU, se.Err)
	assert.Equal(t, "sku-a", se.ProductID)

	_, err = l.GetStock(ctx, "sku-a")
	assert.True(t, errors.Is(err, domain.ErrUnknownSKU))
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_ACeroNoTocaReabastecimiento(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 12, entity.StatusLowStock))

	res, err := l.Adjust(context.Background(), inventory.AdjustInput{ProductID: skuA, NewQuantity: 0, Reason: "merma"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOutOfStock, res.Status)

	p, err := l.GetStock(context.Background(), skuA)
	require.NoError(t, err)
	assert.Nil(t, p.RestockDateTime)
	assert.Zero(t, p.AddedStockAmount)
}

func TestAdjust_AumentoActualizaReabastecimientoYUbicacion(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 4, entity.StatusLowStock))
	loc := "B7"

	_, err := l.Adjust(context.Background(), inventory.AdjustInput{ProductID: skuA, NewQuantity: 30, Location: &loc})
	require.NoError(t, err)

	p, err := l.GetStock(context.Background(), skuA)
	require.NoError(t, err)
	assert.Equal(t, 30, p.Quantity)
	assert.Equal(t, entity.StatusInStock, p.Status)
	assert.Equal(t, 26, p.AddedStockAmount)
	require.NotNil(t, p.RestockDateTime)
	assert.Equal(t, "B7", p.Location)
}

func TestAdjust_SinUbicacionConservaLaAnterior(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 4, entity.StatusLowStock))

	_, err := l.Adjust(context.Background(), inventory.AdjustInput{ProductID: skuA, NewQuantity: 8})
	require.NoError(t, err)
	p, _ := l.GetStock(context.Background(), skuA)
	assert.Equal(t, "A1", p.Location)
}

func TestAdjust_NegativoInvalido(t *testing.T) {
	l, _, _ := newLedger(t, product(skuA, 4, entity.StatusLowStock))

	_, err := l.Adjust(context.Background(), inventory.AdjustInput{ProductID: skuA, NewQuantity: -1})
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
	qty, _ := quantityOf(t, l, skuA)
	assert.Equal(t, 4, qty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconcile / ListLowStock
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_CorrigeEstadosYEsIdempotente(t *testing.T) {
	l, _, _ := newLedger(t,
		product(skuA, 0, entity.StatusInStock),    // incorrecto
		product(skuB, 50, entity.StatusInStock),   // correcto
		product(skuC, 7, entity.StatusOutOfStock), // incorrecto
	)
	ctx := context.Background()

	res, err := l.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Scanned)
	assert.Equal(t, 2, res.Corrected)

	_, status := quantityOf(t, l, skuA)
	assert.Equal(t, entity.StatusOutOfStock, status)
	_, status = quantityOf(t, l, skuC)
	assert.Equal(t, entity.StatusLowStock, status)

	res, err = l.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Corrected)
}

func TestListLowStock_ResuelveProveedorConRespaldo(t *testing.T) {
	supID := "5f0c0000-0000-0000-0000-000000000001"
	missingID := "5f0c0000-0000-0000-0000-0000000000ff"
	a := product(skuA, 2, entity.StatusLowStock)
	a.SupplierID = &supID
	b := product(skuB, 0, entity.StatusOutOfStock)
	c := product(skuC, 40, entity.StatusInStock)
	c.SupplierID = &missingID
	d := product("00000000-0000-0000-0000-00000000000d", 5, entity.StatusLowStock)
	d.SupplierID = &missingID

	l, store, _ := newLedger(t, a, b, c, d)
	store.SeedSuppliers(entity.Supplier{ID: supID, Name: "Distribuidora Norte"})

	items, err := l.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Orden por cantidad ascendente.
	assert.Equal(t, skuB, items[0].Product.ID)
	assert.Equal(t, inventory.UnassignedSupplier, items[0].SupplierName)
	assert.Equal(t, skuA, items[1].Product.ID)
	assert.Equal(t, "Distribuidora Norte", items[1].SupplierName)
	require.NotNil(t, items[1].Supplier)
	// Referencia a proveedor inexistente: respaldo.
	assert.Equal(t, inventory.UnassignedSupplier, items[2].SupplierName)
	assert.Nil(t, items[2].Supplier)
}
