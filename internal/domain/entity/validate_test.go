package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMaterialInput_Validate(t *testing.T) {
	base := MaterialInput{
		Code: "FE-01", Name: "Ferro gusa", Type: MaterialTypeRawMaterial, Unit: "kg",
		UnitCost: decimal.RequireFromString("4.20"), StockQuantity: decimal.NewFromInt(100), MinStock: decimal.NewFromInt(20),
	}
	assert.True(t, base.Validate())

	sinCodigo := base
	sinCodigo.Code = "  "
	assert.False(t, sinCodigo.Validate())

	tipo := base
	tipo.Type = "scrap"
	assert.False(t, tipo.Validate())

	negativo := base
	negativo.StockQuantity = decimal.NewFromInt(-1)
	assert.False(t, negativo.Validate())
}

func TestMaterialPatch_Validate(t *testing.T) {
	vacio := ""
	assert.False(t, MaterialPatch{Name: &vacio}.Validate())
	assert.True(t, MaterialPatch{}.Validate())
}

func TestSupplierInput_Validate(t *testing.T) {
	cinco, seis := 5, 6
	assert.True(t, SupplierInput{Code: "S1", Name: "Aços Brasil", Rating: &cinco}.Validate())
	assert.False(t, SupplierInput{Code: "S1", Name: "Aços Brasil", Rating: &seis}.Validate())
	assert.False(t, SupplierInput{Name: "Aços Brasil"}.Validate())
}

func TestQualityInspectionInput_Validate(t *testing.T) {
	in := QualityInspectionInput{InspectorName: "Ana", InspectionType: InspectionTypeFinal, Status: InspectionStatusApproved}
	assert.True(t, in.Validate())

	in.InspectorName = ""
	assert.False(t, in.Validate())
}
