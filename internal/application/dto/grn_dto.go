package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GRNRequest recepción de mercancía: fija la cantidad del producto en new_quantity.
type GRNRequest struct {
	GRNNumber    string          `json:"grn_number" validate:"required,max=64"`
	ProductID    string          `json:"product_id" validate:"required,uuid"`
	SupplierID   *string         `json:"supplier_id" validate:"omitempty,uuid"`
	AdminID      *string         `json:"admin_id" validate:"omitempty,max=64"`
	Price        decimal.Decimal `json:"price"`
	ReceivedDate *time.Time      `json:"received_date"`
	NewQuantity  *int            `json:"new_quantity" validate:"required"`
}

// GRNResponse nota GRN registrada. Replayed indica reenvío de una nota ya existente.
type GRNResponse struct {
	ID               string          `json:"id"`
	GRNNumber        string          `json:"grn_number"`
	ProductID        string          `json:"product_id"`
	SupplierID       *string         `json:"supplier_id,omitempty"`
	AdminID          *string         `json:"admin_id,omitempty"`
	Price            decimal.Decimal `json:"price"`
	ReceivedDate     time.Time       `json:"received_date"`
	PreviousQuantity int             `json:"previous_quantity"`
	NewQuantity      int             `json:"new_quantity"`
	AdjustedQuantity int             `json:"adjusted_quantity"`
	AdjustmentType   string          `json:"adjustment_type"`
	CreatedAt        time.Time       `json:"created_at"`
	Stock            *StockResponse  `json:"stock,omitempty"`
	Replayed         bool            `json:"replayed,omitempty"`
}
