package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

// GRNNoteRepository persistencia de notas GRN (append-only).
type GRNNoteRepository interface {
	// Create devuelve domain.ErrDuplicate si grn_number ya existe.
	Create(ctx context.Context, note *entity.GRNNote) error
	GetByID(ctx context.Context, id string) (*entity.GRNNote, error)
	GetByNumber(ctx context.Context, number string) (*entity.GRNNote, error)
}
