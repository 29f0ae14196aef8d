package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada    = "Entrada"    // suma stock
	MovementTypeSalida     = "Salida"     // resta stock
	MovementTypeAjuste     = "Ajuste"     // resta stock (ajuste administrativo)
	MovementTypeDevolucion = "Devolucion" // suma stock (devolución de cliente)
)

// ValidMovementType verifica que el string sea un tipo de movimiento definido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntrada, MovementTypeSalida, MovementTypeAjuste, MovementTypeDevolucion:
		return true
	}
	return false
}

// MovementAddsStock indica si el tipo suma (true) o resta (false) stock.
func MovementAddsStock(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeDevolucion
}

// InventoryMovement registro inmutable de auditoría de un cambio de stock.
// Nunca se actualiza ni se elimina; StockAnterior/StockNuevo capturan el
// estado del producto dentro de la misma transacción que lo mutó.
type InventoryMovement struct {
	ID            string
	ProductID     string
	Tipo          string
	Cantidad      int // siempre > 0; el signo lo da el tipo
	StockAnterior int
	StockNuevo    int
	Motivo        string
	Referencia    string // opcional, ej. "pedido:<id>"
	Fecha         time.Time
	CreatedAt     time.Time
}
