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

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

const orderColumns = `id, user_id, order_number, product_id, quantity, unit, status, priority, start_date, expected_end_date, actual_end_date, notes, created_at, updated_at`

// ProductionOrderRepo adaptador de production_orders.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador.
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

func orderDest(o *entity.ProductionOrder) []any {
	return []any{&o.ID, &o.OwnerID, &o.OrderNumber, &o.ProductID, &o.Quantity, &o.Unit, &o.Status,
		&o.Priority, &o.StartDate, &o.ExpectedEndDate, &o.ActualEndDate, &o.Notes, &o.CreatedAt, &o.UpdatedAt}
}

// ListWithProduct órdenes del dueño (más recientes primero) con nombre y unidad del producto.
func (r *ProductionOrderRepo) ListWithProduct(ctx context.Context, ownerID string) ([]entity.ProductionOrderView, error) {
	const query = `
	SELECT o.id, o.user_id, o.order_number, o.product_id, o.quantity, o.unit, o.status, o.priority,
	       o.start_date, o.expected_end_date, o.actual_end_date, o.notes, o.created_at, o.updated_at,
	       COALESCE(p.name, ''), COALESCE(p.unit, '')
	FROM production_orders o
	LEFT JOIN materials p ON p.id = o.product_id
	WHERE o.user_id = $1
	ORDER BY o.created_at DESC`

	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	list := []entity.ProductionOrderView{}
	for rows.Next() {
		var v entity.ProductionOrderView
		dest := append(orderDest(&v.Order), &v.ProductName, &v.ProductUnit)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Create inserta la orden.
func (r *ProductionOrderRepo) Create(ctx context.Context, ownerID string, in entity.ProductionOrderInput) (*entity.ProductionOrder, error) {
	now := time.Now().UTC()
	query := `INSERT INTO production_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULL, $11, $12, $12)
		RETURNING ` + orderColumns
	var o entity.ProductionOrder
	err := r.q.QueryRow(ctx, query,
		uuid.New().String(), ownerID, in.OrderNumber, in.ProductID, in.Quantity, in.Unit, in.Status,
		in.Priority, in.StartDate, in.ExpectedEndDate, in.Notes, now,
	).Scan(orderDest(&o)...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert production order: %w", err)
	}
	return &o, nil
}

// Update aplica el patch (típicamente el cambio de estado).
func (r *ProductionOrderRepo) Update(ctx context.Context, ownerID, id string, patch entity.ProductionOrderPatch) (*entity.ProductionOrder, error) {
	var set setClause
	addIf(&set, "quantity", patch.Quantity)
	addIf(&set, "status", patch.Status)
	addIf(&set, "priority", patch.Priority)
	addIf(&set, "start_date", patch.StartDate)
	addIf(&set, "expected_end_date", patch.ExpectedEndDate)
	addIf(&set, "actual_end_date", patch.ActualEndDate)
	addIf(&set, "notes", patch.Notes)
	set.add("updated_at", time.Now().UTC())

	query, args := set.updateSQL("production_orders", orderColumns, id, ownerID)
	var o entity.ProductionOrder
	if err := r.q.QueryRow(ctx, query, args...).Scan(orderDest(&o)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update production order: %w", err)
	}
	return &o, nil
}

// StatusRows estado y fecha de creación de todas las órdenes del dueño.
func (r *ProductionOrderRepo) StatusRows(ctx context.Context, ownerID string) ([]entity.OrderStatusRow, error) {
	rows, err := r.q.Query(ctx, `SELECT status, created_at FROM production_orders WHERE user_id = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("order status rows: %w", err)
	}
	defer rows.Close()
	var list []entity.OrderStatusRow
	for rows.Next() {
		var s entity.OrderStatusRow
		if err := rows.Scan(&s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order status: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
