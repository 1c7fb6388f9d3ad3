package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaterialType clasifica un material del inventario de la fundición.
type MaterialType string

const (
	MaterialTypeRawMaterial     MaterialType = "raw_material"
	MaterialTypeFinishedProduct MaterialType = "finished_product"
	MaterialTypeConsumable      MaterialType = "consumable"
)

// Valid indica si el tipo pertenece al catálogo.
func (t MaterialType) Valid() bool {
	switch t {
	case MaterialTypeRawMaterial, MaterialTypeFinishedProduct, MaterialTypeConsumable:
		return true
	}
	return false
}

// Material representa una materia prima, producto terminado o consumible.
// El stock se guarda en la misma fila; no hay multi-bodega.
type Material struct {
	ID            string           `json:"id"`
	OwnerID       string           `json:"user_id"`
	Code          string           `json:"code"` // único por dueño
	Name          string           `json:"name"`
	Type          MaterialType     `json:"type"`
	Unit          string           `json:"unit"`
	UnitCost      decimal.Decimal  `json:"unit_cost"`
	StockQuantity decimal.Decimal  `json:"stock_quantity"`
	MinStock      decimal.Decimal  `json:"min_stock"`
	MaxStock      *decimal.Decimal `json:"max_stock,omitempty"`
	Description   *string          `json:"description,omitempty"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// IsLowStock es true cuando stock_quantity <= min_stock.
func (m Material) IsLowStock() bool {
	return m.StockQuantity.LessThanOrEqual(m.MinStock)
}

// MaterialInput campos que el usuario informa al crear un material.
type MaterialInput struct {
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Type          MaterialType     `json:"type"`
	Unit          string           `json:"unit"`
	UnitCost      decimal.Decimal  `json:"unit_cost"`
	StockQuantity decimal.Decimal  `json:"stock_quantity"`
	MinStock      decimal.Decimal  `json:"min_stock"`
	MaxStock      *decimal.Decimal `json:"max_stock,omitempty"`
	Description   *string          `json:"description,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"` // nil = activo
}

// Validate aplica las invariantes del material antes de ir al backend.
func (in MaterialInput) Validate() bool {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" {
		return false
	}
	if !in.Type.Valid() {
		return false
	}
	return !in.UnitCost.IsNegative() && !in.StockQuantity.IsNegative() && !in.MinStock.IsNegative()
}

// MaterialPatch actualización parcial; solo se escriben los campos no nulos.
type MaterialPatch struct {
	Code          *string          `json:"code,omitempty"`
	Name          *string          `json:"name,omitempty"`
	Type          *MaterialType    `json:"type,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	StockQuantity *decimal.Decimal `json:"stock_quantity,omitempty"`
	MinStock      *decimal.Decimal `json:"min_stock,omitempty"`
	MaxStock      *decimal.Decimal `json:"max_stock,omitempty"`
	Description   *string          `json:"description,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// Validate rechaza valores que romperían las invariantes del material.
func (p MaterialPatch) Validate() bool {
	if p.Type != nil && !p.Type.Valid() {
		return false
	}
	if p.Code != nil && strings.TrimSpace(*p.Code) == "" {
		return false
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return false
	}
	for _, d := range []*decimal.Decimal{p.UnitCost, p.StockQuantity, p.MinStock} {
		if d != nil && d.IsNegative() {
			return false
		}
	}
	return true
}
