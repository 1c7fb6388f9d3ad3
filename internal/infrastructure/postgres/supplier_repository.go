package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/foundry-erp/internal/domain"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
	"github.com/jhoicas/foundry-erp/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, user_id, code, name, contact_name, phone, email, address, rating, is_active, notes, created_at, updated_at`

// SupplierRepo adaptador de suppliers.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func supplierDest(s *entity.Supplier) []any {
	return []any{&s.ID, &s.OwnerID, &s.Code, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Address,
		&s.Rating, &s.IsActive, &s.Notes, &s.CreatedAt, &s.UpdatedAt}
}

// ListActive proveedores activos por nombre.
func (r *SupplierRepo) ListActive(ctx context.Context, ownerID string) ([]entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE user_id = $1 AND is_active = true ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	list := []entity.Supplier{}
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(supplierDest(&s)...); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Create inserta el proveedor.
func (r *SupplierRepo) Create(ctx context.Context, ownerID string, in entity.SupplierInput) (*entity.Supplier, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now().UTC()
	query := `INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING ` + supplierColumns
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query,
		uuid.New().String(), ownerID, in.Code, in.Name, in.ContactName, in.Phone, in.Email, in.Address,
		in.Rating, active, in.Notes, now,
	).Scan(supplierDest(&s)...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert supplier: %w", err)
	}
	return &s, nil
}

// CountActive cantidad de proveedores activos.
func (r *SupplierRepo) CountActive(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers WHERE user_id = $1 AND is_active = true`, ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count suppliers: %w", err)
	}
	return n, nil
}
