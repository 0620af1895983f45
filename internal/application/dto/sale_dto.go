package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta. unit_price 0 u omitido toma el precio del producto.
type SaleLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleRequest alta o reemplazo de una venta.
type SaleRequest struct {
	CashierID   string            `json:"cashier_id" validate:"required,max=64"`
	CustomerID  *string           `json:"customer_id" validate:"omitempty,uuid"`
	PaymentType string            `json:"payment_type" validate:"required,oneof=CASH CREDIT_CARD DEBIT_CARD"`
	Discount    decimal.Decimal   `json:"discount"`
	Lines       []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ReturnLineRequest producto devuelto.
type ReturnLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason" validate:"required,max=255"`
}

// ReturnRequest devolución de productos de una venta.
type ReturnRequest struct {
	Lines []ReturnLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SaleLineResponse línea de venta confirmada.
type SaleLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ReturnLineResponse línea de devolución registrada.
type ReturnLineResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Quantity   int       `json:"quantity"`
	Reason     string    `json:"reason"`
	ReturnedAt time.Time `json:"returned_at"`
}

// SaleResponse venta con líneas; Stock solo en respuestas de mutación, Returns solo en consulta.
type SaleResponse struct {
	ID          string               `json:"id"`
	CashierID   string               `json:"cashier_id"`
	CustomerID  *string              `json:"customer_id,omitempty"`
	PaymentType string               `json:"payment_type"`
	Completed   bool                 `json:"completed"`
	Discount    decimal.Decimal      `json:"discount"`
	Amount      decimal.Decimal      `json:"amount"`
	Time        time.Time            `json:"time"`
	Lines       []SaleLineResponse   `json:"lines"`
	Returns     []ReturnLineResponse `json:"returns,omitempty"`
	Stock       []StockResponse      `json:"stock,omitempty"`
}

// ReturnResponse devolución registrada y stock resultante.
type ReturnResponse struct {
	SaleID string               `json:"sale_id"`
	Lines  []ReturnLineResponse `json:"lines"`
	Stock  []StockResponse      `json:"stock"`
}
