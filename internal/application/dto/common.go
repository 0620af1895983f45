package dto

// ErrorResponse cuerpo de error HTTP.
// ProductID, Requested y Available se informan en rechazos del libro de stock;
// Fields en errores de validación (campo -> regla incumplida).
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	ProductID string            `json:"product_id,omitempty"`
	Requested *int              `json:"requested,omitempty"`
	Available *int              `json:"available,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}
