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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, customer_id, cashier_id, payment_type, completed, discount, amount, time, created_at, updated_at`

// SaleRepo persistencia de ventas (sales) y sus líneas (product_sales).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CustomerID, s.CashierID, s.PaymentType, s.Completed, s.Discount, s.Amount, s.Time, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// Update reescribe la cabecera (cliente, forma de pago, descuento, total).
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales
		SET customer_id = $2, cashier_id = $3, payment_type = $4, completed = $5, discount = $6, amount = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.CustomerID, s.CashierID, s.PaymentType, s.Completed, s.Discount, s.Amount, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CustomerID, &s.CashierID, &s.PaymentType, &s.Completed, &s.Discount, &s.Amount, &s.Time, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate obtiene la venta y bloquea la fila (SELECT FOR UPDATE).
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

// ListLines devuelve las líneas de la venta ordenadas por producto.
func (r *SaleRepo) ListLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error) {
	query := `
		SELECT sales_id, product_id, quantity, unit_price, created_at, updated_at
		FROM product_sales WHERE sales_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var out []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// GetLine obtiene la línea (venta, producto); nil si el producto no está en la venta.
func (r *SaleRepo) GetLine(ctx context.Context, saleID, productID string) (*entity.SaleLine, error) {
	query := `
		SELECT sales_id, product_id, quantity, unit_price, created_at, updated_at
		FROM product_sales WHERE sales_id = $1 AND product_id = $2`
	var l entity.SaleLine
	err := r.q.QueryRow(ctx, query, saleID, productID).Scan(&l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale line: %w", err)
	}
	return &l, nil
}

// CreateLine inserta una línea de venta.
func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	query := `
		INSERT INTO product_sales (sales_id, product_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// UpdateLine actualiza cantidad y precio de una línea existente.
func (r *SaleRepo) UpdateLine(ctx context.Context, l *entity.SaleLine) error {
	query := `
		UPDATE product_sales SET quantity = $3, unit_price = $4, updated_at = $5
		WHERE sales_id = $1 AND product_id = $2`
	tag, err := r.q.Exec(ctx, query, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLine elimina la línea (venta, producto).
func (r *SaleRepo) DeleteLine(ctx context.Context, saleID, productID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM product_sales WHERE sales_id = $1 AND product_id = $2`, saleID, productID)
	if err != nil {
		return fmt.Errorf("delete sale line: %w", err)
	}
	return nil
}
