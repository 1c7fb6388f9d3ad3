// Package repository define los puertos de persistencia contra el backend remoto.
// Todas las operaciones reciben el ownerID: el aislamiento por dueño lo aplica el adaptador.
package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
)

// MaterialRepository puerto para la tabla materials.
type MaterialRepository interface {
	ListActive(ctx context.Context, ownerID string) ([]entity.Material, error)
	Create(ctx context.Context, ownerID string, in entity.MaterialInput) (*entity.Material, error)
	Update(ctx context.Context, ownerID, id string, patch entity.MaterialPatch) (*entity.Material, error)
	Delete(ctx context.Context, ownerID, id string) error
	// ActiveStockRows proyección stock/mínimo de los materiales activos (dashboard).
	ActiveStockRows(ctx context.Context, ownerID string) ([]entity.StockRow, error)
}

// ProductionOrderRepository puerto para production_orders.
type ProductionOrderRepository interface {
	// ListWithProduct lista las órdenes unidas con nombre/unidad del producto.
	ListWithProduct(ctx context.Context, ownerID string) ([]entity.ProductionOrderView, error)
	Create(ctx context.Context, ownerID string, in entity.ProductionOrderInput) (*entity.ProductionOrder, error)
	Update(ctx context.Context, ownerID, id string, patch entity.ProductionOrderPatch) (*entity.ProductionOrder, error)
	StatusRows(ctx context.Context, ownerID string) ([]entity.OrderStatusRow, error)
}

// QualityInspectionRepository puerto para quality_inspections.
type QualityInspectionRepository interface {
	List(ctx context.Context, ownerID string) ([]entity.QualityInspection, error)
	Create(ctx context.Context, ownerID string, in entity.QualityInspectionInput) (*entity.QualityInspection, error)
	Statuses(ctx context.Context, ownerID string) ([]entity.InspectionStatus, error)
}

// SupplierRepository puerto para suppliers.
type SupplierRepository interface {
	ListActive(ctx context.Context, ownerID string) ([]entity.Supplier, error)
	Create(ctx context.Context, ownerID string, in entity.SupplierInput) (*entity.Supplier, error)
	CountActive(ctx context.Context, ownerID string) (int, error)
}

// CostEntryRepository puerto para cost_entries.
type CostEntryRepository interface {
	ListWithCategory(ctx context.Context, ownerID string) ([]entity.CostEntryView, error)
	Create(ctx context.Context, ownerID string, in entity.CostEntryInput) (*entity.CostEntry, error)
	Amounts(ctx context.Context, ownerID string) ([]decimal.Decimal, error)
}
