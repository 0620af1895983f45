package entity

import "time"

// Supplier proveedor de productos. Un producto puede no tener proveedor asignado.
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Contact   string
	CreatedAt time.Time
}
