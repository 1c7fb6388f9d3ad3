package gateway_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foundry-erp/internal/application/gateway"
	"github.com/jhoicas/foundry-erp/internal/domain"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
	"github.com/jhoicas/foundry-erp/internal/infrastructure/memory"
)

type fixedOwner struct{ id string }

func (o *fixedOwner) OwnerID() (string, bool) { return o.id, o.id != "" }

var today = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func newGateway(ownerID string) (*gateway.Gateway, *memory.DB, *fixedOwner) {
	db := memory.New().WithClock(func() time.Time { return today })
	owner := &fixedOwner{id: ownerID}
	gw := gateway.New(gateway.Repositories{
		Materials:   db.Materials(),
		Orders:      db.Orders(),
		Inspections: db.Inspections(),
		Suppliers:   db.Suppliers(),
		Costs:       db.Costs(),
	}, owner, zerolog.Nop()).WithClock(func() time.Time { return today })
	return gw, db, owner
}

func ironOre() entity.MaterialInput {
	return entity.MaterialInput{
		Code: "RM-01", Name: "Iron Ore", Type: entity.MaterialTypeRawMaterial, Unit: "kg",
		UnitCost: decimal.RequireFromString("2.5"), StockQuantity: decimal.NewFromInt(100), MinStock: decimal.NewFromInt(50),
	}
}

func TestEscrituras_SinDuenoNoTocanElBackend(t *testing.T) {
	gw, db, _ := newGateway("")
	ctx := context.Background()

	_, err := gw.CreateMaterial(ctx, ironOre())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = gw.UpdateMaterial(ctx, "m1", entity.MaterialPatch{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.ErrorIs(t, gw.DeleteMaterial(ctx, "m1"), domain.ErrNotAuthenticated)
	_, err = gw.CreateProductionOrder(ctx, entity.ProductionOrderInput{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = gw.UpdateProductionOrder(ctx, "o1", entity.ProductionOrderPatch{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = gw.CreateQualityInspection(ctx, entity.QualityInspectionInput{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = gw.CreateSupplier(ctx, entity.SupplierInput{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = gw.CreateCostEntry(ctx, entity.CostEntryInput{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	for _, table := range []string{memory.TableMaterials, memory.TableOrders, memory.TableInspections, memory.TableSuppliers, memory.TableCosts} {
		assert.Zero(t, db.Calls(table), table)
	}
}

func TestLecturas_SinDueno(t *testing.T) {
	gw, _, _ := newGateway("")
	_, err := gw.GetMaterials(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = gw.GetDashboardStats(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestCreateMaterial_InputInvalido(t *testing.T) {
	gw, db, _ := newGateway("u1")
	in := ironOre()
	in.Type = "metal"

	_, err := gw.CreateMaterial(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, db.Calls(memory.TableMaterials))
}

func TestGetMaterials_SoloActivosDelDuenoPorNombre(t *testing.T) {
	gw, _, owner := newGateway("u1")
	ctx := context.Background()

	b := ironOre()
	b.Code, b.Name = "RM-02", "Bauxita"
	inactive := ironOre()
	inactive.Code, inactive.Name = "RM-03", "Antracita"
	off := false
	inactive.IsActive = &off

	for _, in := range []entity.MaterialInput{ironOre(), b, inactive} {
		_, err := gw.CreateMaterial(ctx, in)
		require.NoError(t, err)
	}
	owner.id = "u2"
	_, err := gw.CreateMaterial(ctx, ironOre())
	require.NoError(t, err, "el código es único por dueño")

	owner.id = "u1"
	list, err := gw.GetMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bauxita", list[0].Name)
	assert.Equal(t, "Iron Ore", list[1].Name)
}

func TestCreateQualityInspection_FechaPorDefecto(t *testing.T) {
	gw, _, _ := newGateway("u1")
	q, err := gw.CreateQualityInspection(context.Background(), entity.QualityInspectionInput{
		InspectionType: entity.InspectionTypeFinal,
		Status:         entity.InspectionStatusApproved,
		InspectorName:  "Joana",
	})
	require.NoError(t, err)
	assert.True(t, q.InspectionDate.Equal(today))
}

func TestCreateProductionOrder_NormalizaEstadoYPrioridad(t *testing.T) {
	gw, _, _ := newGateway("u1")
	ctx := context.Background()
	m, err := gw.CreateMaterial(ctx, ironOre())
	require.NoError(t, err)

	o, err := gw.CreateProductionOrder(ctx, entity.ProductionOrderInput{
		OrderNumber: "OP-001", ProductID: m.ID, Quantity: decimal.NewFromInt(10), Unit: m.Unit,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Equal(t, entity.OrderPriorityNormal, o.Priority)

	views, err := gw.GetProductionOrders(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Iron Ore", views[0].ProductName)
	assert.Equal(t, "kg", views[0].ProductUnit)
}

func TestGetDashboardStats(t *testing.T) {
	gw, db, _ := newGateway("u1")
	ctx := context.Background()

	m, err := gw.CreateMaterial(ctx, ironOre())
	require.NoError(t, err)
	low := ironOre()
	low.Code, low.Name, low.StockQuantity = "RM-02", "Coque", decimal.NewFromInt(50)
	_, err = gw.CreateMaterial(ctx, low)
	require.NoError(t, err)

	for i, st := range []entity.OrderStatus{entity.OrderStatusPending, entity.OrderStatusInProgress, entity.OrderStatusInProgress, entity.OrderStatusCompleted} {
		_, err := gw.CreateProductionOrder(ctx, entity.ProductionOrderInput{
			OrderNumber: "OP-00" + string(rune('1'+i)), ProductID: m.ID, Quantity: decimal.NewFromInt(1), Unit: "kg", Status: st,
		})
		require.NoError(t, err)
	}
	for _, st := range []entity.InspectionStatus{entity.InspectionStatusApproved, entity.InspectionStatusApproved, entity.InspectionStatusRejected} {
		_, err := gw.CreateQualityInspection(ctx, entity.QualityInspectionInput{
			InspectionType: entity.InspectionTypeIncoming, Status: st, InspectorName: "Joana",
		})
		require.NoError(t, err)
	}
	_, err = gw.CreateSupplier(ctx, entity.SupplierInput{Code: "F-01", Name: "Siderúrgica Sul"})
	require.NoError(t, err)
	db.AddCostCategory("u1", "cat-1", "Energia", entity.CostCategoryIndirect)
	for _, amount := range []string{"100.50", "49.50"} {
		_, err = gw.CreateCostEntry(ctx, entity.CostEntryInput{
			CategoryID: "cat-1", Amount: decimal.RequireFromString(amount), Description: "conta de luz", EntryDate: today,
		})
		require.NoError(t, err)
	}

	stats, err := gw.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ActiveOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 1, stats.CompletedToday)
	assert.Equal(t, 1, stats.LowStockItems)
	assert.Equal(t, 1, stats.ActiveSuppliers)
	assert.True(t, stats.TotalCosts.Equal(decimal.NewFromInt(150)))
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.InDelta(t, 200.0/3.0, stats.QualityApprovalRate, 0.001)

	costs, err := gw.GetCostEntries(ctx)
	require.NoError(t, err)
	require.Len(t, costs, 2)
	assert.Equal(t, "Energia", costs[0].CategoryName)
}

func TestGetDashboardStats_LecturaFallidaCuentaVacia(t *testing.T) {
	gw, db, _ := newGateway("u1")
	ctx := context.Background()
	_, err := gw.CreateSupplier(ctx, entity.SupplierInput{Code: "F-01", Name: "Siderúrgica Sul"})
	require.NoError(t, err)

	db.FailReads(memory.TableSuppliers, errors.New("timeout"))
	db.FailReads(memory.TableInspections, errors.New("timeout"))

	stats, err := gw.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.ActiveSuppliers)
	assert.Equal(t, float64(100), stats.QualityApprovalRate)
}

func TestDeleteMaterial_NoExiste(t *testing.T) {
	gw, _, _ := newGateway("u1")
	assert.ErrorIs(t, gw.DeleteMaterial(context.Background(), "nope"), domain.ErrNotFound)
}
