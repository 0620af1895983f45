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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, supplier_id, name, brand_name, price, seller_price, quantity, location, status,
	added_stock_amount, restock_date_time, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var status string
	if err := row.Scan(
		&p.ID, &p.SupplierID, &p.Name, &p.BrandName, &p.Price, &p.SellerPrice, &p.Quantity, &p.Location, &status,
		&p.AddedStockAmount, &p.RestockDateTime, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Status = entity.StockStatus(status)
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByIDsForUpdate bloquea las filas (SELECT FOR UPDATE) en orden de id para evitar interbloqueos.
func (r *ProductRepo) GetByIDsForUpdate(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::uuid[]) ORDER BY id FOR UPDATE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	out := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// UpdateStock persiste cantidad, estado y metadatos de reabastecimiento en una sola sentencia.
func (r *ProductRepo) UpdateStock(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET quantity = $2, status = $3, location = $4, added_stock_amount = $5, restock_date_time = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Quantity, string(p.Status), p.Location, p.AddedStockAmount, p.RestockDateTime, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListForUpdate bloquea todos los productos (barrido de reconciliación).
func (r *ProductRepo) ListForUpdate(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id FOR UPDATE`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return list, nil
}

// ListBelowQuantity productos con quantity < limit.
func (r *ProductRepo) ListBelowQuantity(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE quantity < $1 ORDER BY quantity, id`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return list, nil
}
