package inventory

import "github.com/shopspring/decimal"

// IsOrderFulfilled compara lo pedido contra lo recibido por artículo (acumulado de
// todas las recepciones de la orden). Una orden sin líneas nunca se completa.
// La sobre-recepción está permitida: solo se exige recibido >= pedido.
func IsOrderFulfilled(ordered, received map[int64]decimal.Decimal) bool {
	if len(ordered) == 0 {
		return false
	}
	for itemID, qty := range ordered {
		got, ok := received[itemID]
		if !ok || got.LessThan(qty) {
			return false
		}
	}
	return true
}
