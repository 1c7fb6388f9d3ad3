package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foundry-erp/internal/application/erp"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
	"github.com/jhoicas/foundry-erp/internal/infrastructure/pdf"
)

func TestGenerate_DevuelveUnPDF(t *testing.T) {
	g := pdf.NewDashboardReportGenerator()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	out, err := g.Generate(context.Background(), pdf.ReportInput{
		Company:     "Fundição Sul",
		OwnerEmail:  "ana@fundicao.com",
		GeneratedAt: now,
		Snapshot: erp.Snapshot{
			Materials: []entity.Material{{
				Code: "RM-01", Name: "Iron Ore", Type: entity.MaterialTypeRawMaterial, Unit: "kg",
				StockQuantity: decimal.NewFromInt(40), MinStock: decimal.NewFromInt(50), IsActive: true,
			}},
			ProductionOrders: []entity.ProductionOrderView{{
				Order: entity.ProductionOrder{
					OrderNumber: "OP-001", Quantity: decimal.NewFromInt(10), Unit: "pç",
					Status: entity.OrderStatusInProgress, Priority: entity.OrderPriorityHigh,
				},
				ProductName: "Tampa de bueiro",
			}},
			DashboardStats: &entity.DashboardStats{ActiveOrders: 1, LowStockItems: 1, QualityApprovalRate: 100},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_SinEstadisticas(t *testing.T) {
	out, err := pdf.NewDashboardReportGenerator().Generate(context.Background(), pdf.ReportInput{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMoneyYQuantity_FormatoBrasileno(t *testing.T) {
	g := pdf.NewDashboardReportGenerator()
	assert.Equal(t, "R$ 1.234,50", g.Money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "100", g.Quantity(decimal.NewFromInt(100)))
	assert.Equal(t, "2,500", g.Quantity(decimal.RequireFromString("2.5")))
}
