package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CostCategoryType naturaleza de la categoría de costo.
type CostCategoryType string

const (
	CostCategoryDirect   CostCategoryType = "direct"
	CostCategoryIndirect CostCategoryType = "indirect"
	CostCategoryOverhead CostCategoryType = "overhead"
)

// CostEntry asiento de costo; la suma de Amount alimenta totalCosts del dashboard.
type CostEntry struct {
	ID                string          `json:"id"`
	OwnerID           string          `json:"user_id"`
	CategoryID        string          `json:"category_id"`
	ProductionOrderID *string         `json:"production_order_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	EntryDate         time.Time       `json:"entry_date"`
	CreatedAt         time.Time       `json:"created_at"`
}

// CostEntryView asiento unido con el nombre y tipo de su categoría.
type CostEntryView struct {
	Entry        CostEntry        `json:"entry"`
	CategoryName string           `json:"category_name"`
	CategoryType CostCategoryType `json:"category_type"`
}

// CostEntryInput campos para registrar un asiento de costo.
type CostEntryInput struct {
	CategoryID        string          `json:"category_id"`
	ProductionOrderID *string         `json:"production_order_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	EntryDate         time.Time       `json:"entry_date"`
}

// Validate exige categoría, descripción y fecha.
func (in CostEntryInput) Validate() bool {
	return in.CategoryID != "" && strings.TrimSpace(in.Description) != "" && !in.EntryDate.IsZero()
}
