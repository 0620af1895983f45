package stock

import (
	"fmt"
	"math"

	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

// DefaultLowStockThreshold umbral por defecto cuando la configuración no define otro.
const DefaultLowStockThreshold = 20

// MaxQuantity cantidad máxima por producto (columna INTEGER de products.quantity).
const MaxQuantity = math.MaxInt32

// Classifier implementa la clasificación de estado de stock (servicio de dominio).
// Es la única fuente del umbral de stock bajo; ningún otro punto del código compara contra un literal.
type Classifier struct {
	threshold int
}

// NewClassifier construye el clasificador. El umbral debe ser >= 1.
func NewClassifier(threshold int) (Classifier, error) {
	if threshold < 1 {
		return Classifier{}, fmt.Errorf("umbral de stock bajo inválido: %d", threshold)
	}
	return Classifier{threshold: threshold}, nil
}

// Threshold devuelve el umbral configurado.
func (c Classifier) Threshold() int { return c.threshold }

// Classify:
//
//	cantidad == 0          -> Out Of Stock
//	0 < cantidad < umbral  -> Low Stock
//	cantidad >= umbral     -> In Stock
func (c Classifier) Classify(quantity int) entity.StockStatus {
	switch {
	case quantity <= 0:
		return entity.StatusOutOfStock
	case quantity < c.threshold:
		return entity.StatusLowStock
	default:
		return entity.StatusInStock
	}
}
