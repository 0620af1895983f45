package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ledger/internal/domain"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

// GRNDocumentUseCase genera el documento imprimible de una nota GRN.
type GRNDocumentUseCase struct {
	txRunner  TxRunner
	generator GRNPDFGenerator
}

// NewGRNDocumentUseCase construye el caso de uso.
func NewGRNDocumentUseCase(txRunner TxRunner, generator GRNPDFGenerator) *GRNDocumentUseCase {
	return &GRNDocumentUseCase{txRunner: txRunner, generator: generator}
}

// GeneratePDF carga nota, producto y proveedor (si existe) y delega el render.
func (uc *GRNDocumentUseCase) GeneratePDF(ctx context.Context, grnID string) ([]byte, *entity.GRNNote, error) {
	if !validID(grnID) {
		return nil, nil, domain.ErrNotFound
	}
	var note *entity.GRNNote
	var product *entity.Product
	var supplier *entity.Supplier
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		if note, err = r.GRNNotes.GetByID(ctx, grnID); err != nil {
			return err
		}
		if note == nil {
			return domain.ErrNotFound
		}
		if product, err = r.Products.GetByID(ctx, note.ProductID); err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		supplierID := note.SupplierID
		if supplierID == nil {
			supplierID = product.SupplierID
		}
		if supplierID != nil {
			found, err := r.Suppliers.GetByIDs(ctx, []string{*supplierID})
			if err != nil {
				return err
			}
			supplier = found[*supplierID]
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	pdf, err := uc.generator.GenerateGRNPDF(note, product, supplier)
	if err != nil {
		return nil, nil, fmt.Errorf("generar PDF GRN: %w", err)
	}
	return pdf, note, nil
}
