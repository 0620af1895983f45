package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pago aceptadas en caja.
const (
	PaymentCash       = "CASH"
	PaymentCreditCard = "CREDIT_CARD"
	PaymentDebitCard  = "DEBIT_CARD"
)

// Sale cabecera de una venta. Amount ya incluye el descuento porcentual.
type Sale struct {
	ID          string
	CustomerID  *string
	CashierID   string
	PaymentType string
	Completed   bool
	Discount    decimal.Decimal // porcentaje 0..100
	Amount      decimal.Decimal
	Time        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SaleLine débito confirmado de una venta sobre un producto (única por venta+producto).
type SaleLine struct {
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
