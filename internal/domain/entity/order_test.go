package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderGuards(t *testing.T) {
	cases := []struct {
		estado        string
		terminal      bool
		addRemove     bool
		assignCourier bool
		cancel        bool
		delete        bool
	}{
		{OrderStatusPendiente, false, true, true, true, true},
		{OrderStatusEnPreparacion, false, false, true, true, false},
		{OrderStatusEnviado, false, false, false, true, false},
		{OrderStatusEntregado, true, false, false, false, false},
		{OrderStatusCancelado, true, false, false, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.estado, func(t *testing.T) {
			o := &Order{Estado: tc.estado}
			assert.Equal(t, tc.terminal, o.Terminal())
			assert.Equal(t, tc.addRemove, o.CanAddOrRemoveItems())
			assert.Equal(t, tc.assignCourier, o.CanAssignCourier())
			assert.Equal(t, tc.cancel, o.CanCancel())
			assert.Equal(t, tc.delete, o.CanDelete())
		})
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("Perdido"))
	assert.False(t, ValidOrderStatus(""))
	assert.False(t, ValidOrderStatus("pendiente")) // sensible a mayúsculas
}

func TestOrderNumber(t *testing.T) {
	numero := OrderNumber("9f3c2a71-b4d8-4e06-8a1f-0c2d3e4f5a6b")
	assert.Equal(t, "PED-9F3C2A71B4D84E06", numero)

	// Derivado del UUID: dos pedidos distintos nunca comparten número,
	// aunque se creen en el mismo instante.
	otro := OrderNumber("0b1c2d3e-4f5a-6b7c-8d9e-0f1a2b3c4d5e")
	assert.NotEqual(t, numero, otro)
}

func TestNewOrderItemSubtotal(t *testing.T) {
	subtotal := NewOrderItemSubtotal(3, decimal.RequireFromString("25.50"))
	assert.True(t, subtotal.Equal(decimal.RequireFromString("76.50")), subtotal.String())
}

func TestValidMovementType(t *testing.T) {
	assert.True(t, ValidMovementType(MovementTypeEntrada))
	assert.True(t, ValidMovementType(MovementTypeSalida))
	assert.True(t, ValidMovementType(MovementTypeAjuste))
	assert.True(t, ValidMovementType(MovementTypeDevolucion))
	assert.False(t, ValidMovementType("Transferencia"))
}

func TestMovementAddsStock(t *testing.T) {
	assert.True(t, MovementAddsStock(MovementTypeEntrada))
	assert.True(t, MovementAddsStock(MovementTypeDevolucion))
	assert.False(t, MovementAddsStock(MovementTypeSalida))
	assert.False(t, MovementAddsStock(MovementTypeAjuste))
}

func TestProductLowStock(t *testing.T) {
	// Umbral propio del producto
	p := &Product{Stock: 4, StockMinimo: 5}
	assert.True(t, p.LowStock(10))

	p = &Product{Stock: 6, StockMinimo: 5}
	assert.False(t, p.LowStock(10))

	// Sin umbral propio: aplica el global
	p = &Product{Stock: 9, StockMinimo: 0}
	assert.True(t, p.LowStock(10))

	p = &Product{Stock: 11, StockMinimo: 0}
	assert.False(t, p.LowStock(10))
}

func TestCalcularIVA(t *testing.T) {
	iva := CalcularIVA(decimal.RequireFromString("191.50"))
	assert.True(t, iva.Equal(decimal.RequireFromString("30.64")), iva.String())
}
