package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBadges_EstadoDeOrden(t *testing.T) {
	assert.Equal(t, Badge{Label: "Pendente", Tone: ToneWarning}, OrderStatusPending.Badge())
	assert.Equal(t, Badge{Label: "Em Produção", Tone: TonePrimary}, OrderStatusInProgress.Badge())
	assert.Equal(t, Badge{Label: "Concluída", Tone: ToneSuccess}, OrderStatusCompleted.Badge())
	assert.Equal(t, Badge{Label: "Cancelada", Tone: ToneError}, OrderStatusCancelled.Badge())
	assert.Equal(t, ToneNeutral, OrderStatus("otro").Badge().Tone)
}

func TestStockBadge(t *testing.T) {
	bajo := Material{StockQuantity: decimal.NewFromInt(3), MinStock: decimal.NewFromInt(3)}
	ok := Material{StockQuantity: decimal.NewFromInt(4), MinStock: decimal.NewFromInt(3)}

	assert.Equal(t, "Estoque Baixo", bajo.StockBadge().Label)
	assert.Equal(t, ToneError, bajo.StockBadge().Tone)
	assert.Equal(t, "Estoque OK", ok.StockBadge().Label)
}

func TestLabels_TiposDesconocidosDevuelvenElValor(t *testing.T) {
	assert.Equal(t, "Matéria-Prima", MaterialTypeRawMaterial.Label())
	assert.Equal(t, "scrap", MaterialType("scrap").Label())
	assert.Equal(t, "Auditoria", InspectionTypeAudit.Label())
	assert.Equal(t, "Condicional", InspectionStatusConditional.Badge().Label)
}
