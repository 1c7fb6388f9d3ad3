package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
	"github.com/jhoicas/foundry-erp/internal/domain/repository"
)

var _ repository.QualityInspectionRepository = (*QualityInspectionRepo)(nil)

const inspectionColumns = `id, user_id, production_order_id, material_id, inspection_type, status, inspector_name, inspection_date, notes, defects_found, corrective_actions, created_at`

// QualityInspectionRepo adaptador de quality_inspections.
type QualityInspectionRepo struct {
	q Querier
}

// NewQualityInspectionRepository construye el adaptador.
func NewQualityInspectionRepository(q Querier) *QualityInspectionRepo {
	return &QualityInspectionRepo{q: q}
}

func inspectionDest(i *entity.QualityInspection) []any {
	return []any{&i.ID, &i.OwnerID, &i.ProductionOrderID, &i.MaterialID, &i.InspectionType, &i.Status,
		&i.InspectorName, &i.InspectionDate, &i.Notes, &i.DefectsFound, &i.CorrectiveActions, &i.CreatedAt}
}

// List inspecciones del dueño, más recientes primero por fecha de inspección.
func (r *QualityInspectionRepo) List(ctx context.Context, ownerID string) ([]entity.QualityInspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM quality_inspections WHERE user_id = $1 ORDER BY inspection_date DESC`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	defer rows.Close()
	list := []entity.QualityInspection{}
	for rows.Next() {
		var i entity.QualityInspection
		if err := rows.Scan(inspectionDest(&i)...); err != nil {
			return nil, fmt.Errorf("scan inspection: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Create inserta la inspección. Fecha cero = ahora.
func (r *QualityInspectionRepo) Create(ctx context.Context, ownerID string, in entity.QualityInspectionInput) (*entity.QualityInspection, error) {
	now := time.Now().UTC()
	inspectedAt := in.InspectionDate
	if inspectedAt.IsZero() {
		inspectedAt = now
	}
	query := `INSERT INTO quality_inspections (` + inspectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + inspectionColumns
	var i entity.QualityInspection
	err := r.q.QueryRow(ctx, query,
		uuid.New().String(), ownerID, in.ProductionOrderID, in.MaterialID, in.InspectionType, in.Status,
		in.InspectorName, inspectedAt, in.Notes, in.DefectsFound, in.CorrectiveActions, now,
	).Scan(inspectionDest(&i)...)
	if err != nil {
		return nil, fmt.Errorf("insert inspection: %w", err)
	}
	return &i, nil
}

// Statuses resultado de todas las inspecciones del dueño.
func (r *QualityInspectionRepo) Statuses(ctx context.Context, ownerID string) ([]entity.InspectionStatus, error) {
	rows, err := r.q.Query(ctx, `SELECT status FROM quality_inspections WHERE user_id = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("inspection statuses: %w", err)
	}
	defer rows.Close()
	var list []entity.InspectionStatus
	for rows.Next() {
		var s entity.InspectionStatus
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan inspection status: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
