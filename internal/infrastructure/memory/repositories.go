package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/pos-ledger/internal/domain"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
	"github.com/jhoicas/pos-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*productRepo)(nil)
	_ repository.SaleRepository     = (*saleRepo)(nil)
	_ repository.ReturnRepository   = (*returnRepo)(nil)
	_ repository.GRNNoteRepository  = (*grnNoteRepo)(nil)
	_ repository.SupplierRepository = (*supplierRepo)(nil)
)

// Los repositorios devuelven copias: modificar el resultado no altera el estado hasta persistirlo.

type productRepo struct{ st *state }

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetByIDsForUpdate(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.st.products[id]; ok {
			out[id] = &p
		}
	}
	return out, nil
}

func (r *productRepo) UpdateStock(_ context.Context, p *entity.Product) error {
	cur, ok := r.st.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Quantity = p.Quantity
	cur.Status = p.Status
	cur.Location = p.Location
	cur.AddedStockAmount = p.AddedStockAmount
	cur.RestockDateTime = p.RestockDateTime
	cur.UpdatedAt = p.UpdatedAt
	r.st.products[p.ID] = cur
	return nil
}

func (r *productRepo) ListForUpdate(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.st.products))
	for _, p := range r.st.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *productRepo) ListBelowQuantity(_ context.Context, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.st.products {
		if p.Quantity < limit {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity < out[j].Quantity
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type saleRepo struct{ st *state }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if _, ok := r.st.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.sales[sale.ID] = *sale
	r.st.saleLines[sale.ID] = map[string]entity.SaleLine{}
	return nil
}

func (r *saleRepo) Update(_ context.Context, sale *entity.Sale) error {
	if _, ok := r.st.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	r.st.sales[sale.ID] = *sale
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	s, ok := r.st.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) ListLines(_ context.Context, saleID string) ([]*entity.SaleLine, error) {
	lines := r.st.saleLines[saleID]
	out := make([]*entity.SaleLine, 0, len(lines))
	for _, l := range lines {
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *saleRepo) GetLine(_ context.Context, saleID, productID string) (*entity.SaleLine, error) {
	l, ok := r.st.saleLines[saleID][productID]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *saleRepo) CreateLine(_ context.Context, line *entity.SaleLine) error {
	lines, ok := r.st.saleLines[line.SaleID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, dup := lines[line.ProductID]; dup {
		return domain.ErrDuplicate
	}
	lines[line.ProductID] = *line
	return nil
}

func (r *saleRepo) UpdateLine(_ context.Context, line *entity.SaleLine) error {
	lines := r.st.saleLines[line.SaleID]
	if _, ok := lines[line.ProductID]; !ok {
		return domain.ErrNotFound
	}
	lines[line.ProductID] = *line
	return nil
}

func (r *saleRepo) DeleteLine(_ context.Context, saleID, productID string) error {
	delete(r.st.saleLines[saleID], productID)
	return nil
}

type returnRepo struct{ st *state }

func (r *returnRepo) Create(_ context.Context, line *entity.ReturnLine) error {
	r.st.returns = append(r.st.returns, *line)
	return nil
}

func (r *returnRepo) SumReturned(_ context.Context, saleID, productID string) (int, error) {
	total := 0
	for _, rl := range r.st.returns {
		if rl.SaleID == saleID && rl.ProductID == productID {
			total += rl.Quantity
		}
	}
	return total, nil
}

func (r *returnRepo) ListBySale(_ context.Context, saleID string) ([]*entity.ReturnLine, error) {
	var out []*entity.ReturnLine
	for _, rl := range r.st.returns {
		if rl.SaleID == saleID {
			rl := rl
			out = append(out, &rl)
		}
	}
	return out, nil
}

type grnNoteRepo struct{ st *state }

func (r *grnNoteRepo) Create(_ context.Context, note *entity.GRNNote) error {
	if _, dup := r.st.grnByNumber[note.GRNNumber]; dup {
		return domain.ErrDuplicate
	}
	r.st.grnNotes[note.ID] = *note
	r.st.grnByNumber[note.GRNNumber] = note.ID
	return nil
}

func (r *grnNoteRepo) GetByID(_ context.Context, id string) (*entity.GRNNote, error) {
	n, ok := r.st.grnNotes[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *grnNoteRepo) GetByNumber(ctx context.Context, number string) (*entity.GRNNote, error) {
	id, ok := r.st.grnByNumber[number]
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

type supplierRepo struct{ st *state }

func (r *supplierRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Supplier, error) {
	out := make(map[string]*entity.Supplier, len(ids))
	for _, id := range ids {
		if s, ok := r.st.suppliers[id]; ok {
			out[id] = &s
		}
	}
	return out, nil
}
