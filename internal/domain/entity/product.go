package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus etiqueta derivada de la cantidad en existencia.
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out Of Stock"
)

// Valid indica si s es una de las tres etiquetas conocidas.
func (s StockStatus) Valid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock:
		return true
	}
	return false
}

// Product representa un SKU con su stock embebido (esquema canónico: no existe tabla
// de inventario separada). Quantity y Status solo los modifica el libro de stock.
type Product struct {
	ID               string
	SupplierID       *string // referencia opcional; ver Supplier
	Name             string
	BrandName        string
	Price            decimal.Decimal // precio de venta
	SellerPrice      decimal.Decimal // precio de compra
	Quantity         int
	Location         string
	Status           StockStatus
	AddedStockAmount int
	RestockDateTime  *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
