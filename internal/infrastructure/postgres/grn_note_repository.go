package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-ledger/internal/domain"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
	"github.com/jhoicas/pos-ledger/internal/domain/repository"
)

var _ repository.GRNNoteRepository = (*GRNNoteRepo)(nil)

const grnColumns = `id, grn_number, product_id, supplier_id, admin_id, price, received_date,
	previous_quantity, new_quantity, adjusted_quantity, adjustment_type, created_at`

// GRNNoteRepo persistencia de notas GRN (append-only).
type GRNNoteRepo struct {
	q Querier
}

// NewGRNNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGRNNoteRepository(q Querier) *GRNNoteRepo {
	return &GRNNoteRepo{q: q}
}

// Create inserta la nota; ErrDuplicate si grn_number ya existe.
func (r *GRNNoteRepo) Create(ctx context.Context, n *entity.GRNNote) error {
	query := `
		INSERT INTO grn_notes (` + grnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.GRNNumber, n.ProductID, n.SupplierID, n.AdminID, n.Price, n.ReceivedDate,
		n.PreviousQuantity, n.NewQuantity, n.AdjustedQuantity, n.AdjustmentType, n.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert grn note: %w", err)
	}
	return nil
}

func (r *GRNNoteRepo) getOne(ctx context.Context, where string, arg string) (*entity.GRNNote, error) {
	var n entity.GRNNote
	err := r.q.QueryRow(ctx, `SELECT `+grnColumns+` FROM grn_notes WHERE `+where, arg).Scan(
		&n.ID, &n.GRNNumber, &n.ProductID, &n.SupplierID, &n.AdminID, &n.Price, &n.ReceivedDate,
		&n.PreviousQuantity, &n.NewQuantity, &n.AdjustedQuantity, &n.AdjustmentType, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grn note: %w", err)
	}
	return &n, nil
}

// GetByID obtiene una nota por ID.
func (r *GRNNoteRepo) GetByID(ctx context.Context, id string) (*entity.GRNNote, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByNumber obtiene una nota por grn_number.
func (r *GRNNoteRepo) GetByNumber(ctx context.Context, number string) (*entity.GRNNote, error) {
	return r.getOne(ctx, "grn_number = $1", number)
}
