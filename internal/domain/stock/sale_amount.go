package stock

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SaleLineAmount par cantidad / precio unitario para el cálculo del total.
type SaleLineAmount struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// SaleAmount total de la venta con descuento porcentual:
// Total = Σ(cantidad * precio) - Σ(cantidad * precio) * descuento / 100
func SaleAmount(lines []SaleLineAmount, discountPct decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	discount := total.Mul(discountPct).Div(hundred)
	return total.Sub(discount).Round(2)
}
