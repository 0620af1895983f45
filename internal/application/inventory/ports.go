package inventory

import (
	"context"

	"github.com/jhoicas/pos-ledger/internal/domain/entity"
	"github.com/jhoicas/pos-ledger/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products  repository.ProductRepository
	Sales     repository.SaleRepository
	Returns   repository.ReturnRepository
	GRNNotes  repository.GRNNoteRepository
	Suppliers repository.SupplierRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback completo; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

// Recorder recibe el resultado de cada operación del libro de stock (métricas).
// Solo se invoca después del Commit o del Rollback.
type Recorder interface {
	ObserveOperation(op string, err error)
	ObserveUnits(direction string, qty int)
}

// GRNPDFGenerator puerto para generar el documento imprimible de una nota GRN.
type GRNPDFGenerator interface {
	GenerateGRNPDF(note *entity.GRNNote, product *entity.Product, supplier *entity.Supplier) ([]byte, error)
}

// NopRecorder descarta todas las observaciones.
type NopRecorder struct{}

func (NopRecorder) ObserveOperation(string, error) {}
func (NopRecorder) ObserveUnits(string, int)       {}
