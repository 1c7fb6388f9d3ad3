package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foundry-erp/internal/domain/entity"
)

var orderCols = []string{"id", "user_id", "order_number", "product_id", "quantity", "unit", "status", "priority",
	"start_date", "expected_end_date", "actual_end_date", "notes", "created_at", "updated_at"}

func orderRow(id string, status entity.OrderStatus) []any {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []any{id, testOwnerID, "OP-" + id, "m1", decimal.NewFromInt(10), "kg", status,
		entity.OrderPriorityNormal, nil, nil, nil, nil, now, now}
}

func TestProductionOrderRepo_ListWithProductUneNombreYUnidad(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cols := append(append([]string{}, orderCols...), "product_name", "product_unit")
	mock.ExpectQuery(`LEFT JOIN materials p ON p.id = o.product_id`).
		WithArgs(testOwnerID).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(append(orderRow("o2", entity.OrderStatusInProgress), "Lingote", "kg")...).
			AddRow(append(orderRow("o1", entity.OrderStatusPending), "Peça fundida", "un")...))

	list, err := NewProductionOrderRepository(mock).ListWithProduct(context.Background(), testOwnerID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "o2", list[0].Order.ID)
	assert.Equal(t, "Lingote", list[0].ProductName)
	assert.Equal(t, "un", list[1].ProductUnit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductionOrderRepo_UpdateEstado(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	status := entity.OrderStatusCompleted
	mock.ExpectQuery(`UPDATE production_orders SET status = \$1, updated_at = \$2 WHERE id = \$3 AND user_id = \$4`).
		WithArgs(status, pgxmock.AnyArg(), "o1", testOwnerID).
		WillReturnRows(pgxmock.NewRows(orderCols).AddRow(orderRow("o1", status)...))

	o, err := NewProductionOrderRepository(mock).Update(context.Background(), testOwnerID, "o1",
		entity.ProductionOrderPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, o.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierRepo_CountActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM suppliers WHERE user_id = \$1 AND is_active = true`).
		WithArgs(testOwnerID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	n, err := NewSupplierRepository(mock).CountActive(context.Background(), testOwnerID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_AplicaEsquemaEmbebido(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS materials`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, Migrate(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}
