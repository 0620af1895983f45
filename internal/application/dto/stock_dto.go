package dto

import "time"

// StockQuantityRequest body de débito / crédito directo.
type StockQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// AdjustStockRequest reabastecimiento manual: fija la cantidad y opcionalmente la ubicación.
type AdjustStockRequest struct {
	NewQuantity *int    `json:"new_quantity" validate:"required"`
	Reason      string  `json:"reason" validate:"max=255"`
	Location    *string `json:"location" validate:"omitempty,max=255"`
}

// StockResponse cantidad y estado resultantes de un producto.
type StockResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Status    string `json:"status"`
}

// ProductStockResponse stock actual de un producto con sus metadatos de reabastecimiento.
type ProductStockResponse struct {
	ProductID        string     `json:"product_id"`
	Name             string     `json:"name"`
	Quantity         int        `json:"quantity"`
	Status           string     `json:"status"`
	Location         string     `json:"location"`
	AddedStockAmount int        `json:"added_stock_amount"`
	RestockDateTime  *time.Time `json:"restock_date_time,omitempty"`
	SupplierID       *string    `json:"supplier_id,omitempty"`
}

// LowStockItemResponse producto bajo el umbral con su proveedor resuelto.
type LowStockItemResponse struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	BrandName    string  `json:"brand_name"`
	Quantity     int     `json:"quantity"`
	Status       string  `json:"status"`
	Location     string  `json:"location"`
	SupplierID   *string `json:"supplier_id,omitempty"`
	SupplierName string  `json:"supplier_name"`
}

// ReconcileResponse resumen del barrido de estados.
type ReconcileResponse struct {
	Scanned   int `json:"scanned"`
	Corrected int `json:"corrected"`
}
