package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste registrados en una nota GRN.
const (
	AdjustmentAddition  = "addition"
	AdjustmentReduction = "reduction"
)

// GRNNote nota de recepción de mercancía: instantánea de auditoría de un ajuste directo de stock.
// Solo se inserta; nunca se actualiza.
type GRNNote struct {
	ID               string
	GRNNumber        string
	ProductID        string
	SupplierID       *string
	AdminID          *string
	Price            decimal.Decimal
	ReceivedDate     time.Time
	PreviousQuantity int
	NewQuantity      int
	AdjustedQuantity int
	AdjustmentType   string
	CreatedAt        time.Time
}
