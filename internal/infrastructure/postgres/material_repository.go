package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/foundry-erp/internal/domain"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
	"github.com/jhoicas/foundry-erp/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, user_id, code, name, type, unit, unit_cost, stock_quantity, min_stock, max_stock, description, is_active, created_at, updated_at`

// MaterialRepo adaptador de la tabla materials.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.OwnerID, &m.Code, &m.Name, &m.Type, &m.Unit, &m.UnitCost,
		&m.StockQuantity, &m.MinStock, &m.MaxStock, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListActive materiales activos del dueño ordenados por nombre.
func (r *MaterialRepo) ListActive(ctx context.Context, ownerID string) ([]entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE user_id = $1 AND is_active = true ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	list := []entity.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

// Create inserta el material y devuelve la fila creada.
func (r *MaterialRepo) Create(ctx context.Context, ownerID string, in entity.MaterialInput) (*entity.Material, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now().UTC()
	query := `INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		RETURNING ` + materialColumns
	m, err := scanMaterial(r.q.QueryRow(ctx, query,
		uuid.New().String(), ownerID, in.Code, in.Name, in.Type, in.Unit, in.UnitCost,
		in.StockQuantity, in.MinStock, in.MaxStock, in.Description, active, now,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert material: %w", err)
	}
	return m, nil
}

// Update aplica el patch y sella updated_at.
func (r *MaterialRepo) Update(ctx context.Context, ownerID, id string, patch entity.MaterialPatch) (*entity.Material, error) {
	var set setClause
	addIf(&set, "code", patch.Code)
	addIf(&set, "name", patch.Name)
	addIf(&set, "type", patch.Type)
	addIf(&set, "unit", patch.Unit)
	addIf(&set, "unit_cost", patch.UnitCost)
	addIf(&set, "stock_quantity", patch.StockQuantity)
	addIf(&set, "min_stock", patch.MinStock)
	addIf(&set, "max_stock", patch.MaxStock)
	addIf(&set, "description", patch.Description)
	addIf(&set, "is_active", patch.IsActive)
	set.add("updated_at", time.Now().UTC())

	query, args := set.updateSQL("materials", materialColumns, id, ownerID)
	m, err := scanMaterial(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("update material: %w", err)
	}
	return m, nil
}

// Delete borra físicamente el material.
func (r *MaterialRepo) Delete(ctx context.Context, ownerID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ActiveStockRows stock y mínimo de los materiales activos.
func (r *MaterialRepo) ActiveStockRows(ctx context.Context, ownerID string) ([]entity.StockRow, error) {
	rows, err := r.q.Query(ctx,
		`SELECT stock_quantity, min_stock FROM materials WHERE user_id = $1 AND is_active = true`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("stock rows: %w", err)
	}
	defer rows.Close()
	var list []entity.StockRow
	for rows.Next() {
		var s entity.StockRow
		if err := rows.Scan(&s.StockQuantity, &s.MinStock); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
