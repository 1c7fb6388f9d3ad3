package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foundry-erp/internal/application/dto"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
)

func TestToProductionOrderResponse_AccionesSegunEstado(t *testing.T) {
	cases := []struct {
		status entity.OrderStatus
		want   []entity.OrderStatus
	}{
		{entity.OrderStatusPending, []entity.OrderStatus{entity.OrderStatusInProgress, entity.OrderStatusCancelled}},
		{entity.OrderStatusInProgress, []entity.OrderStatus{entity.OrderStatusCompleted, entity.OrderStatusCancelled}},
		{entity.OrderStatusCompleted, nil},
		{entity.OrderStatusCancelled, nil},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			out := dto.ToProductionOrderResponse(entity.ProductionOrderView{
				Order:       entity.ProductionOrder{Status: tc.status, Priority: entity.OrderPriorityNormal},
				ProductName: "Tampa", ProductUnit: "pç",
			})
			got := []entity.OrderStatus{}
			for _, a := range out.Actions {
				got = append(got, a.Status)
				assert.NotEmpty(t, a.Label)
			}
			if tc.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tc.want, got)
			}
			assert.Equal(t, "Tampa", out.Product.Name)
		})
	}
}

func TestToMaterialResponse_BadgeDeStock(t *testing.T) {
	out := dto.ToMaterialResponse(entity.Material{
		Type: entity.MaterialTypeConsumable, StockQuantity: decimal.NewFromInt(5), MinStock: decimal.NewFromInt(5),
	})
	require.Equal(t, entity.ToneError, out.StockBadge.Tone)
	assert.Equal(t, "Estoque Baixo", out.StockBadge.Label)
	assert.Equal(t, "Consumível", out.TypeLabel)
}
