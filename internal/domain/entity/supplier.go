package entity

import (
	"strings"
	"time"
)

// Supplier proveedor de la fundición.
type Supplier struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"user_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ContactName *string   `json:"contact_name,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Rating      *int      `json:"rating,omitempty"` // 1..5
	IsActive    bool      `json:"is_active"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierInput campos para crear un proveedor.
type SupplierInput struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	ContactName *string `json:"contact_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// Validate exige código y nombre; rating en [1,5] si viene.
func (in SupplierInput) Validate() bool {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return false
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return false
	}
	return true
}
