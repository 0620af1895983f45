package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/pos-ledger/internal/application/inventory"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store almacenamiento en memoria con la misma semántica transaccional que PostgreSQL:
// cada Run trabaja sobre una copia privada del estado que solo reemplaza al original si fn
// termina sin error. Las transacciones se serializan con un único mutex.
type Store struct {
	mu sync.Mutex
	st *state
}

type state struct {
	products    map[string]entity.Product
	suppliers   map[string]entity.Supplier
	sales       map[string]entity.Sale
	saleLines   map[string]map[string]entity.SaleLine // venta -> producto -> línea
	returns     []entity.ReturnLine
	grnNotes    map[string]entity.GRNNote
	grnByNumber map[string]string
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: &state{
		products:    map[string]entity.Product{},
		suppliers:   map[string]entity.Supplier{},
		sales:       map[string]entity.Sale{},
		saleLines:   map[string]map[string]entity.SaleLine{},
		grnNotes:    map[string]entity.GRNNote{},
		grnByNumber: map[string]string{},
	}}
}

// SeedProducts inserta o reemplaza productos (datos de arranque y pruebas).
func (s *Store) SeedProducts(products ...entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.st.products[p.ID] = p
	}
}

// SeedSuppliers inserta o reemplaza proveedores.
func (s *Store) SeedSuppliers(suppliers ...entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sup := range suppliers {
		s.st.suppliers[sup.ID] = sup
	}
}

// Run ejecuta fn sobre una copia del estado; Commit = reemplazo, Rollback = descartar la copia.
func (s *Store) Run(ctx context.Context, fn func(r inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(inventory.TxRepos{
		Products:  &productRepo{st: work},
		Sales:     &saleRepo{st: work},
		Returns:   &returnRepo{st: work},
		GRNNotes:  &grnNoteRepo{st: work},
		Suppliers: &supplierRepo{st: work},
	}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (st *state) clone() *state {
	c := &state{
		products:    make(map[string]entity.Product, len(st.products)),
		suppliers:   make(map[string]entity.Supplier, len(st.suppliers)),
		sales:       make(map[string]entity.Sale, len(st.sales)),
		saleLines:   make(map[string]map[string]entity.SaleLine, len(st.saleLines)),
		returns:     append([]entity.ReturnLine(nil), st.returns...),
		grnNotes:    make(map[string]entity.GRNNote, len(st.grnNotes)),
		grnByNumber: make(map[string]string, len(st.grnByNumber)),
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range st.sales {
		c.sales[k] = v
	}
	for saleID, lines := range st.saleLines {
		m := make(map[string]entity.SaleLine, len(lines))
		for k, v := range lines {
			m[k] = v
		}
		c.saleLines[saleID] = m
	}
	for k, v := range st.grnNotes {
		c.grnNotes[k] = v
	}
	for k, v := range st.grnByNumber {
		c.grnByNumber[k] = v
	}
	return c
}
