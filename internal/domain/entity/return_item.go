package entity

import "time"

// ReturnLine crédito aplicado al stock por la devolución de una línea de venta. Inmutable.
type ReturnLine struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   int
	Reason     string
	ReturnedAt time.Time
}
