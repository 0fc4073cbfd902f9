package inventory

import "github.com/shopspring/decimal"

// Epsilon umbral bajo el cual un saldo se considera cero y la fila se elimina.
var Epsilon = decimal.New(1, -3)

// Action acción que el ledger debe aplicar sobre la fila de stock.
type Action int

const (
	ActionNone   Action = iota // sin cambios
	ActionInsert               // crear fila con la cantidad del delta
	ActionUpdate               // actualizar cantidad
	ActionDelete               // eliminar fila (saldo <= épsilon)
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "none"
	}
}

// Decision resultado de aplicar un delta a un saldo.
type Decision struct {
	Action   Action
	Quantity decimal.Decimal // nueva cantidad para insert/update
	// MissingSource: se intentó descontar de una fila inexistente (se ignora).
	MissingSource bool
	// Overdraw: el descuento dejó el saldo por debajo de -épsilon (se elimina la fila).
	Overdraw bool
}

// Decide aplica la regla del ledger (servicio de dominio).
// current es nil cuando la fila no existe.
//
//	existe, nuevo > ε   → update
//	existe, nuevo <= ε  → delete (un sobregiro pequeño se trata como cero)
//	no existe, delta > 0 → insert
//	no existe, delta <= 0 → sin cambios
func Decide(current *decimal.Decimal, delta decimal.Decimal) Decision {
	if current == nil {
		if delta.GreaterThan(decimal.Zero) {
			return Decision{Action: ActionInsert, Quantity: delta}
		}
		return Decision{Action: ActionNone, MissingSource: delta.IsNegative()}
	}
	next := current.Add(delta)
	if next.GreaterThan(Epsilon) {
		return Decision{Action: ActionUpdate, Quantity: next}
	}
	return Decision{
		Action:   ActionDelete,
		Quantity: decimal.Zero,
		Overdraw: next.LessThan(Epsilon.Neg()),
	}
}

// IsPositive indica si una cantidad supera el épsilon (saldo observable).
func IsPositive(q decimal.Decimal) bool {
	return q.GreaterThan(Epsilon)
}
