package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// Errores del libro de stock.
	ErrUnknownSKU        = errors.New("producto desconocido")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrNotInOriginalSale = errors.New("el producto no pertenece a la venta original")
	ErrExcessReturn      = errors.New("la devolución excede la cantidad vendida")
)

// StockError detalla un rechazo del libro de stock sobre un producto concreto.
// Err siempre es uno de los sentinelas de este paquete (usar errors.Is).
type StockError struct {
	Err       error
	ProductID string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	switch e.Err {
	case ErrInsufficientStock, ErrExcessReturn:
		return fmt.Sprintf("%s: producto %s (solicitado %d, disponible %d)", e.Err, e.ProductID, e.Requested, e.Available)
	default:
		return fmt.Sprintf("%s: producto %s", e.Err, e.ProductID)
	}
}

func (e *StockError) Unwrap() error { return e.Err }

// ErrorCode devuelve el código estable expuesto a clientes y métricas.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return "OK"
	case errors.Is(err, ErrUnknownSKU):
		return "UNKNOWN_SKU"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.Is(err, ErrNotInOriginalSale):
		return "NOT_IN_ORIGINAL_SALE"
	case errors.Is(err, ErrExcessReturn):
		return "EXCESS_RETURN"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION"
	default:
		return "INTERNAL"
	}
}
