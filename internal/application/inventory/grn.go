package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger/internal/domain"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

// GRNInput recepción de mercancía: fija la cantidad del producto en NewQuantity.
type GRNInput struct {
	GRNNumber    string
	ProductID    string
	SupplierID   *string
	AdminID      *string
	Price        decimal.Decimal
	ReceivedDate time.Time
	NewQuantity  int
}

// GRNResult nota registrada y stock resultante. Replayed indica que la nota ya existía
// con el mismo contenido y no se aplicó un segundo ajuste.
type GRNResult struct {
	Note     *entity.GRNNote
	Stock    StockResult
	Replayed bool
}

// ReceiveGRN ajusta el stock y escribe la nota GRN en la misma transacción.
// Idempotente por grn_number: reenviar la misma nota devuelve la existente.
func (l *Ledger) ReceiveGRN(ctx context.Context, in GRNInput) (*GRNResult, error) {
	if in.GRNNumber == "" || in.ProductID == "" || in.Price.IsNegative() {
		return nil, l.finish(OpGRN, domain.ErrInvalidInput, unitTally{})
	}
	if in.NewQuantity < 0 {
		return nil, l.finish(OpGRN, &domain.StockError{Err: domain.ErrInvalidQuantity, ProductID: in.ProductID, Requested: in.NewQuantity}, unitTally{})
	}

	var res GRNResult
	var t unitTally
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		// Bloquear primero: un reenvío concurrente espera y luego ve la nota ya confirmada.
		p, err := l.lockOne(ctx, r, in.ProductID)
		if err != nil {
			return err
		}
		existing, err := r.GRNNotes.GetByNumber(ctx, in.GRNNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.ProductID != in.ProductID || existing.NewQuantity != in.NewQuantity {
				return domain.ErrDuplicate
			}
			res = GRNResult{Note: existing, Stock: resultOf(p), Replayed: true}
			return nil
		}

		if in.SupplierID != nil {
			if err := resolveSupplier(ctx, r, *in.SupplierID); err != nil {
				return err
			}
		}

		previous, err := l.adjustInTx(ctx, r, p, in.NewQuantity, nil, &t)
		if err != nil {
			return err
		}
		adjusted := in.NewQuantity - previous
		adjType := entity.AdjustmentAddition
		if adjusted < 0 {
			adjType = entity.AdjustmentReduction
		}
		now := l.now()
		received := in.ReceivedDate
		if received.IsZero() {
			received = now
		}
		note := &entity.GRNNote{
			ID:               uuid.New().String(),
			GRNNumber:        in.GRNNumber,
			ProductID:        in.ProductID,
			SupplierID:       in.SupplierID,
			AdminID:          in.AdminID,
			Price:            in.Price,
			ReceivedDate:     received,
			PreviousQuantity: previous,
			NewQuantity:      in.NewQuantity,
			AdjustedQuantity: adjusted,
			AdjustmentType:   adjType,
			CreatedAt:        now,
		}
		if err := r.GRNNotes.Create(ctx, note); err != nil {
			return err
		}
		res = GRNResult{Note: note, Stock: resultOf(p)}
		return nil
	})
	if err := l.finish(OpGRN, err, t); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetGRN devuelve una nota GRN por id.
func (l *Ledger) GetGRN(ctx context.Context, id string) (*entity.GRNNote, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	var note *entity.GRNNote
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		note, err = r.GRNNotes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if note == nil {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// resolveSupplier comprueba que el proveedor referenciado exista; ErrNotFound si no.
func resolveSupplier(ctx context.Context, r TxRepos, supplierID string) error {
	if !validID(supplierID) {
		return domain.ErrNotFound
	}
	found, err := r.Suppliers.GetByIDs(ctx, []string{supplierID})
	if err != nil {
		return err
	}
	if found[supplierID] == nil {
		return domain.ErrNotFound
	}
	return nil
}
