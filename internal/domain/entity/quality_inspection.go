package entity

import (
	"strings"
	"time"
)

// InspectionType momento del proceso en que se inspecciona.
type InspectionType string

const (
	InspectionTypeIncoming  InspectionType = "incoming"
	InspectionTypeInProcess InspectionType = "in_process"
	InspectionTypeFinal     InspectionType = "final"
	InspectionTypeAudit     InspectionType = "audit"
)

// Valid indica si el tipo pertenece al catálogo.
func (t InspectionType) Valid() bool {
	switch t {
	case InspectionTypeIncoming, InspectionTypeInProcess, InspectionTypeFinal, InspectionTypeAudit:
		return true
	}
	return false
}

// InspectionStatus resultado de la inspección.
type InspectionStatus string

const (
	InspectionStatusApproved    InspectionStatus = "approved"
	InspectionStatusRejected    InspectionStatus = "rejected"
	InspectionStatusConditional InspectionStatus = "conditional"
)

// Valid indica si el resultado pertenece al catálogo.
func (s InspectionStatus) Valid() bool {
	switch s {
	case InspectionStatusApproved, InspectionStatusRejected, InspectionStatusConditional:
		return true
	}
	return false
}

// QualityInspection inspección de calidad, opcionalmente ligada a una orden y/o material.
type QualityInspection struct {
	ID                string           `json:"id"`
	OwnerID           string           `json:"user_id"`
	ProductionOrderID *string          `json:"production_order_id,omitempty"`
	MaterialID        *string          `json:"material_id,omitempty"`
	InspectionType    InspectionType   `json:"inspection_type"`
	Status            InspectionStatus `json:"status"`
	InspectorName     string           `json:"inspector_name"`
	InspectionDate    time.Time        `json:"inspection_date"`
	Notes             *string          `json:"notes,omitempty"`
	DefectsFound      *string          `json:"defects_found,omitempty"`
	CorrectiveActions *string          `json:"corrective_actions,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// QualityInspectionInput campos para registrar una inspección.
// InspectionDate cero significa "ahora".
type QualityInspectionInput struct {
	ProductionOrderID *string          `json:"production_order_id,omitempty"`
	MaterialID        *string          `json:"material_id,omitempty"`
	InspectionType    InspectionType   `json:"inspection_type"`
	Status            InspectionStatus `json:"status"`
	InspectorName     string           `json:"inspector_name"`
	InspectionDate    time.Time        `json:"inspection_date"`
	Notes             *string          `json:"notes,omitempty"`
	DefectsFound      *string          `json:"defects_found,omitempty"`
	CorrectiveActions *string          `json:"corrective_actions,omitempty"`
}

// Validate exige inspector y valores de catálogo.
func (in QualityInspectionInput) Validate() bool {
	return strings.TrimSpace(in.InspectorName) != "" && in.InspectionType.Valid() && in.Status.Valid()
}
