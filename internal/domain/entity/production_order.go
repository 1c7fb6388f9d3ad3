package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de producción.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions única tabla de transiciones legales. completed y cancelled son terminales.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
}

// Valid indica si el estado pertenece al catálogo.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal indica si no hay transiciones de salida.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// NextStatuses devuelve las acciones que la capa de presentación puede ofrecer.
func (s OrderStatus) NextStatuses() []OrderStatus {
	next := orderTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo valida un cambio de estado contra la máquina de estados.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, n := range orderTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// OrderPriority prioridad de una orden de producción.
type OrderPriority string

const (
	OrderPriorityLow    OrderPriority = "low"
	OrderPriorityNormal OrderPriority = "normal"
	OrderPriorityHigh   OrderPriority = "high"
	OrderPriorityUrgent OrderPriority = "urgent"
)

// Valid indica si la prioridad pertenece al catálogo.
func (p OrderPriority) Valid() bool {
	switch p {
	case OrderPriorityLow, OrderPriorityNormal, OrderPriorityHigh, OrderPriorityUrgent:
		return true
	}
	return false
}

// ProductionOrder orden de producción de un material (el producto).
// Unit se copia del producto al crear la orden.
type ProductionOrder struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"user_id"`
	OrderNumber     string          `json:"order_number"`
	ProductID       string          `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	Status          OrderStatus     `json:"status"`
	Priority        OrderPriority   `json:"priority"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	ExpectedEndDate *time.Time      `json:"expected_end_date,omitempty"`
	ActualEndDate   *time.Time      `json:"actual_end_date,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductionOrderView orden unida con el nombre y la unidad de su producto.
type ProductionOrderView struct {
	Order       ProductionOrder `json:"order"`
	ProductName string          `json:"product_name"`
	ProductUnit string          `json:"product_unit"`
}

// ProductionOrderInput campos para crear una orden.
type ProductionOrderInput struct {
	OrderNumber     string          `json:"order_number"`
	ProductID       string          `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	Status          OrderStatus     `json:"status"`
	Priority        OrderPriority   `json:"priority"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	ExpectedEndDate *time.Time      `json:"expected_end_date,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
}

// Normalize completa estado y prioridad por defecto (pending / normal).
func (in *ProductionOrderInput) Normalize() {
	if in.Status == "" {
		in.Status = OrderStatusPending
	}
	if in.Priority == "" {
		in.Priority = OrderPriorityNormal
	}
}

// Validate aplica las invariantes de la orden.
func (in ProductionOrderInput) Validate() bool {
	if in.OrderNumber == "" || in.ProductID == "" || in.Unit == "" {
		return false
	}
	return in.Quantity.IsPositive() && in.Status.Valid() && in.Priority.Valid()
}

// ProductionOrderPatch actualización parcial de una orden.
type ProductionOrderPatch struct {
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	Status          *OrderStatus     `json:"status,omitempty"`
	Priority        *OrderPriority   `json:"priority,omitempty"`
	StartDate       *time.Time       `json:"start_date,omitempty"`
	ExpectedEndDate *time.Time       `json:"expected_end_date,omitempty"`
	ActualEndDate   *time.Time       `json:"actual_end_date,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// Validate rechaza valores fuera de catálogo o cantidades no positivas.
func (p ProductionOrderPatch) Validate() bool {
	if p.Quantity != nil && !p.Quantity.IsPositive() {
		return false
	}
	if p.Status != nil && !p.Status.Valid() {
		return false
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return false
	}
	return true
}
