package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
	"github.com/jhoicas/foundry-erp/internal/domain/repository"
)

var _ repository.CostEntryRepository = (*CostEntryRepo)(nil)

const costColumns = `id, user_id, category_id, production_order_id, amount, description, entry_date, created_at`

// CostEntryRepo adaptador de cost_entries.
type CostEntryRepo struct {
	q Querier
}

// NewCostEntryRepository construye el adaptador.
func NewCostEntryRepository(q Querier) *CostEntryRepo {
	return &CostEntryRepo{q: q}
}

func costDest(c *entity.CostEntry) []any {
	return []any{&c.ID, &c.OwnerID, &c.CategoryID, &c.ProductionOrderID, &c.Amount, &c.Description, &c.EntryDate, &c.CreatedAt}
}

// ListWithCategory asientos del dueño con nombre y tipo de categoría, por fecha descendente.
func (r *CostEntryRepo) ListWithCategory(ctx context.Context, ownerID string) ([]entity.CostEntryView, error) {
	const query = `
	SELECT e.id, e.user_id, e.category_id, e.production_order_id, e.amount, e.description, e.entry_date, e.created_at,
	       COALESCE(c.name, ''), COALESCE(c.type, '')
	FROM cost_entries e
	LEFT JOIN cost_categories c ON c.id = e.category_id
	WHERE e.user_id = $1
	ORDER BY e.entry_date DESC`

	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list cost entries: %w", err)
	}
	defer rows.Close()
	list := []entity.CostEntryView{}
	for rows.Next() {
		var v entity.CostEntryView
		dest := append(costDest(&v.Entry), &v.CategoryName, &v.CategoryType)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan cost entry: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Create inserta un asiento de costo.
func (r *CostEntryRepo) Create(ctx context.Context, ownerID string, in entity.CostEntryInput) (*entity.CostEntry, error) {
	query := `INSERT INTO cost_entries (` + costColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + costColumns
	var c entity.CostEntry
	err := r.q.QueryRow(ctx, query,
		uuid.New().String(), ownerID, in.CategoryID, in.ProductionOrderID, in.Amount, in.Description,
		in.EntryDate, time.Now().UTC(),
	).Scan(costDest(&c)...)
	if err != nil {
		return nil, fmt.Errorf("insert cost entry: %w", err)
	}
	return &c, nil
}

// Amounts montos de todos los asientos del dueño.
func (r *CostEntryRepo) Amounts(ctx context.Context, ownerID string) ([]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `SELECT amount FROM cost_entries WHERE user_id = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("cost amounts: %w", err)
	}
	defer rows.Close()
	var list []decimal.Decimal
	for rows.Next() {
		var a decimal.Decimal
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan cost amount: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
