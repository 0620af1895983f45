package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-ledger/internal/domain"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
	"github.com/jhoicas/pos-ledger/internal/domain/stock"
	"github.com/jhoicas/pos-ledger/pkg/logger"
)

// Nombres de operación usados en logs y métricas.
const (
	OpDebit      = "debit"
	OpCredit     = "credit"
	OpAdjust     = "adjust"
	OpSale       = "sale"
	OpSaleUpdate = "sale_update"
	OpReturn     = "return"
	OpGRN        = "grn"
	OpReconcile  = "reconcile"
)

// Dirección de las unidades movidas (métricas).
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// StockResult cantidad y estado resultantes de un producto tras una mutación.
type StockResult struct {
	ProductID string
	Quantity  int
	Status    entity.StockStatus
}

func resultOf(p *entity.Product) StockResult {
	return StockResult{ProductID: p.ID, Quantity: p.Quantity, Status: p.Status}
}

// AdjustInput entrada de un ajuste directo (reabastecimiento manual).
// Location solo se modifica si viene informado.
type AdjustInput struct {
	ProductID   string
	NewQuantity int
	Reason      string
	Location    *string
}

// Ledger libro de stock: único dueño de la mutación de quantity y status de cada producto.
// Cada operación pública corre en una sola transacción (TxRunner) con bloqueo de fila.
type Ledger struct {
	txRunner   TxRunner
	classifier stock.Classifier
	recorder   Recorder
	log        *logger.Logger
	now        func() time.Time
}

// NewLedger construye el libro de stock. recorder puede ser nil.
func NewLedger(txRunner TxRunner, classifier stock.Classifier, recorder Recorder, log *logger.Logger) *Ledger {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Ledger{
		txRunner:   txRunner,
		classifier: classifier,
		recorder:   recorder,
		log:        log,
		now:        time.Now,
	}
}

// Classifier devuelve el clasificador configurado.
func (l *Ledger) Classifier() stock.Classifier { return l.classifier }

// unitTally acumula unidades movidas; solo se reporta si la transacción confirma.
type unitTally struct {
	in, out int
}

// finish registra el resultado de la operación y devuelve err sin modificarlo.
func (l *Ledger) finish(op string, err error, t unitTally) error {
	l.recorder.ObserveOperation(op, err)
	if err == nil {
		if t.out > 0 {
			l.recorder.ObserveUnits(DirectionOut, t.out)
		}
		if t.in > 0 {
			l.recorder.ObserveUnits(DirectionIn, t.in)
		}
		return nil
	}
	code := domain.ErrorCode(err)
	if code == "INTERNAL" {
		l.log.Error().Err(err).Str("op", op).Msg("operación de stock fallida, rollback")
	} else {
		l.log.Warn().Err(err).Str("op", op).Str("code", code).Msg("operación de stock rechazada")
	}
	return err
}

// Debit descuenta qty del producto. Falla con ErrInsufficientStock si no alcanza (sin débito parcial).
func (l *Ledger) Debit(ctx context.Context, productID string, qty int) (*StockResult, error) {
	var res StockResult
	var t unitTally
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		p, err := l.lockOne(ctx, r, productID)
		if err != nil {
			return err
		}
		if err := l.debitInTx(ctx, r, p, qty, &t); err != nil {
			return err
		}
		res = resultOf(p)
		return nil
	})
	if err := l.finish(OpDebit, err, t); err != nil {
		return nil, err
	}
	return &res, nil
}

// Credit suma qty al producto sin límite superior.
func (l *Ledger) Credit(ctx context.Context, productID string, qty int) (*StockResult, error) {
	var res StockResult
	var t unitTally
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		p, err := l.lockOne(ctx, r, productID)
		if err != nil {
			return err
		}
		if err := l.creditInTx(ctx, r, p, qty, &t); err != nil {
			return err
		}
		res = resultOf(p)
		return nil
	})
	if err := l.finish(OpCredit, err, t); err != nil {
		return nil, err
	}
	return &res, nil
}

// Adjust fija la cantidad directamente. Si aumenta respecto al valor previo actualiza
// added_stock_amount y restock_date_time.
func (l *Ledger) Adjust(ctx context.Context, in AdjustInput) (*StockResult, error) {
	var res StockResult
	var t unitTally
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		p, err := l.lockOne(ctx, r, in.ProductID)
		if err != nil {
			return err
		}
		if _, err := l.adjustInTx(ctx, r, p, in.NewQuantity, in.Location, &t); err != nil {
			return err
		}
		res = resultOf(p)
		return nil
	})
	if err == nil {
		l.log.Info().Str("product_id", in.ProductID).Int("quantity", res.Quantity).Str("reason", in.Reason).Msg("ajuste de stock")
	}
	if err := l.finish(OpAdjust, err, t); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetStock lee cantidad y estado actuales.
func (l *Ledger) GetStock(ctx context.Context, productID string) (*entity.Product, error) {
	if !validID(productID) {
		return nil, &domain.StockError{Err: domain.ErrUnknownSKU, ProductID: productID}
	}
	var p *entity.Product
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		p, err = r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return &domain.StockError{Err: domain.ErrUnknownSKU, ProductID: productID}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// lockOne bloquea un producto; ErrUnknownSKU si no existe.
func (l *Ledger) lockOne(ctx context.Context, r TxRepos, productID string) (*entity.Product, error) {
	products, err := l.lockAll(ctx, r, []string{productID})
	if err != nil {
		return nil, err
	}
	return products[productID], nil
}

// lockAll resuelve y bloquea todos los productos en un solo lote (orden ascendente de id).
// El primer id ausente, en el orden recibido, aborta con ErrUnknownSKU.
func (l *Ledger) lockAll(ctx context.Context, r TxRepos, ids []string) (map[string]*entity.Product, error) {
	products, err := r.Products.GetByIDsForUpdate(ctx, lockOrder(ids))
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if products[id] == nil {
			return nil, &domain.StockError{Err: domain.ErrUnknownSKU, ProductID: id}
		}
	}
	return products, nil
}

// validID indica si id tiene forma de UUID; cualquier otro valor no puede existir en el almacén.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// lockOrder ids con forma de UUID, sin repetir, en orden ascendente.
func lockOrder(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || !validID(id) {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// debitInTx resta qty de p (ya bloqueado) y persiste cantidad y estado juntos.
func (l *Ledger) debitInTx(ctx context.Context, r TxRepos, p *entity.Product, qty int, t *unitTally) error {
	if qty <= 0 {
		return &domain.StockError{Err: domain.ErrInvalidQuantity, ProductID: p.ID, Requested: qty}
	}
	if p.Quantity < qty {
		return &domain.StockError{Err: domain.ErrInsufficientStock, ProductID: p.ID, Requested: qty, Available: p.Quantity}
	}
	before := p.Quantity
	p.Quantity -= qty
	if err := l.persist(ctx, r, p); err != nil {
		return err
	}
	t.out += qty
	l.logMutation(OpDebit, p, before)
	return nil
}

// creditInTx suma qty a p (ya bloqueado) sin superar stock.MaxQuantity.
func (l *Ledger) creditInTx(ctx context.Context, r TxRepos, p *entity.Product, qty int, t *unitTally) error {
	if qty <= 0 {
		return &domain.StockError{Err: domain.ErrInvalidQuantity, ProductID: p.ID, Requested: qty}
	}
	if room := stock.MaxQuantity - p.Quantity; qty > room {
		return &domain.StockError{Err: domain.ErrInvalidQuantity, ProductID: p.ID, Requested: qty, Available: room}
	}
	before := p.Quantity
	p.Quantity += qty
	if err := l.persist(ctx, r, p); err != nil {
		return err
	}
	t.in += qty
	l.logMutation(OpCredit, p, before)
	return nil
}

// adjustInTx fija la cantidad de p (ya bloqueado) y devuelve la cantidad previa.
func (l *Ledger) adjustInTx(ctx context.Context, r TxRepos, p *entity.Product, newQty int, location *string, t *unitTally) (int, error) {
	if newQty < 0 || newQty > stock.MaxQuantity {
		return 0, &domain.StockError{Err: domain.ErrInvalidQuantity, ProductID: p.ID, Requested: newQty, Available: p.Quantity}
	}
	before := p.Quantity
	p.Quantity = newQty
	if newQty > before {
		restockedAt := l.now()
		p.AddedStockAmount = newQty - before
		p.RestockDateTime = &restockedAt
	}
	if location != nil {
		p.Location = *location
	}
	if err := l.persist(ctx, r, p); err != nil {
		return 0, err
	}
	switch {
	case newQty > before:
		t.in += newQty - before
	case newQty < before:
		t.out += before - newQty
	}
	l.logMutation(OpAdjust, p, before)
	return before, nil
}

// persist recalcula el estado a partir de la cantidad y guarda ambos en la misma escritura.
func (l *Ledger) persist(ctx context.Context, r TxRepos, p *entity.Product) error {
	p.Status = l.classifier.Classify(p.Quantity)
	p.UpdatedAt = l.now()
	return r.Products.UpdateStock(ctx, p)
}

func (l *Ledger) logMutation(op string, p *entity.Product, before int) {
	l.log.Debug().
		Str("op", op).
		Str("product_id", p.ID).
		Int("before", before).
		Int("after", p.Quantity).
		Str("status", string(p.Status)).
		Msg("stock actualizado")
}
