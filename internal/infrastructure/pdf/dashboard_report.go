// Package pdf genera el reporte del tablero de planta (KPIs, stock bajo, órdenes e inspecciones).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + usuario    │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Em Produção | Pendentes | Concluídas hoje | ...       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Materiais com estoque baixo                          │
//	│  TABLA: Ordens de produção                                   │
//	│  TABLA: Inspeções de qualidade                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/foundry-erp/internal/application/erp"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorError   = &props.Color{Red: 190, Green: 30, Blue: 45}
)

const maxTableRows = 25

// ReportInput datos del reporte: la foto del store más quién lo pide.
type ReportInput struct {
	Company     string
	OwnerEmail  string
	GeneratedAt time.Time
	Snapshot    erp.Snapshot
}

// DashboardReportGenerator arma el PDF con Maroto v2.
type DashboardReportGenerator struct {
	printer *message.Printer
}

// NewDashboardReportGenerator números en formato pt-BR (1.234,50).
func NewDashboardReportGenerator() *DashboardReportGenerator {
	return &DashboardReportGenerator{printer: message.NewPrinter(language.BrazilianPortuguese)}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *DashboardReportGenerator) Generate(_ context.Context, in ReportInput) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório do Painel", true).
		WithAuthor(in.Company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.kpiRows(in.Snapshot.DashboardStats)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Materiais com estoque baixo"))
	m.AddRows(g.lowStockRows(in.Snapshot.Materials)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("Ordens de produção"))
	m.AddRows(g.orderRows(in.Snapshot.ProductionOrders)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("Inspeções de qualidade"))
	m.AddRows(inspectionRows(in.Snapshot.QualityInspections)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(in ReportInput) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(in.Company, "Fundição"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Usuário: "+nonEmpty(in.OwnerEmail, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("RELATÓRIO DO PAINEL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Gerado em: "+in.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func (g *DashboardReportGenerator) kpiRows(stats *entity.DashboardStats) []core.Row {
	if stats == nil {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Estatísticas indisponíveis.", props.Text{Size: 9, Color: colorGray, Top: 2}),
		))}
	}
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 5}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			kpi("Em Produção", g.printer.Sprintf("%d", stats.ActiveOrders)),
			kpi("Pendentes", g.printer.Sprintf("%d", stats.PendingOrders)),
			kpi("Concluídas hoje", g.printer.Sprintf("%d", stats.CompletedToday)),
			kpi("Estoque baixo", g.printer.Sprintf("%d", stats.LowStockItems)),
		),
		row.New(14).Add(
			kpi("Custos totais", g.Money(stats.TotalCosts)),
			kpi("Receita", g.Money(stats.TotalRevenue)),
			kpi("Aprovação", g.printer.Sprintf("%.1f%%", stats.QualityApprovalRate)),
			kpi("Fornecedores ativos", g.printer.Sprintf("%d", stats.ActiveSuppliers)),
		),
	}
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		cols[i] = col.New(sizes[i]).Add(text.New(l, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1}))
	}
	return row.New(6).Add(cols...)
}

func cell(size int, s string, color *props.Color) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1, Color: color}))
}

func emptyRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1})))
}

// lowStockRows solo los materiales en o por debajo del mínimo.
func (g *DashboardReportGenerator) lowStockRows(materials []entity.Material) []core.Row {
	rows := []core.Row{tableHeader([]string{"Código", "Material", "Tipo", "Estoque", "Mínimo"}, []int{2, 4, 2, 2, 2})}
	n := 0
	for _, m := range materials {
		if !m.IsLowStock() {
			continue
		}
		if n == maxTableRows {
			break
		}
		n++
		rows = append(rows, row.New(6).Add(
			cell(2, m.Code, nil),
			cell(4, m.Name, nil),
			cell(2, m.Type.Label(), nil),
			cell(2, g.Quantity(m.StockQuantity)+" "+m.Unit, colorError),
			cell(2, g.Quantity(m.MinStock)+" "+m.Unit, nil),
		))
	}
	if n == 0 {
		rows = append(rows, emptyRow("Nenhum material abaixo do estoque mínimo."))
	}
	return rows
}

func (g *DashboardReportGenerator) orderRows(orders []entity.ProductionOrderView) []core.Row {
	rows := []core.Row{tableHeader([]string{"Número", "Produto", "Quantidade", "Status", "Prioridade"}, []int{2, 4, 2, 2, 2})}
	for i, v := range orders {
		if i == maxTableRows {
			break
		}
		rows = append(rows, row.New(6).Add(
			cell(2, v.Order.OrderNumber, nil),
			cell(4, nonEmpty(v.ProductName, "-"), nil),
			cell(2, g.Quantity(v.Order.Quantity)+" "+v.Order.Unit, nil),
			cell(2, v.Order.Status.Badge().Label, nil),
			cell(2, v.Order.Priority.Badge().Label, nil),
		))
	}
	if len(orders) == 0 {
		rows = append(rows, emptyRow("Nenhuma ordem de produção."))
	}
	return rows
}

func inspectionRows(list []entity.QualityInspection) []core.Row {
	rows := []core.Row{tableHeader([]string{"Data", "Tipo", "Inspetor", "Resultado"}, []int{2, 3, 4, 3})}
	for i, q := range list {
		if i == maxTableRows {
			break
		}
		var color *props.Color
		if q.Status == entity.InspectionStatusRejected {
			color = colorError
		}
		rows = append(rows, row.New(6).Add(
			cell(2, q.InspectionDate.Format("02/01/2006"), nil),
			cell(3, q.InspectionType.Label(), nil),
			cell(4, q.InspectorName, nil),
			cell(3, q.Status.Badge().Label, color),
		))
	}
	if len(list) == 0 {
		rows = append(rows, emptyRow("Nenhuma inspeção registrada."))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Money formatea en reais: "R$ 1.234,50".
func (g *DashboardReportGenerator) Money(d decimal.Decimal) string {
	return g.printer.Sprintf("R$ %.2f", d.Round(2).InexactFloat64())
}

// Quantity formatea cantidades con hasta tres decimales significativos.
func (g *DashboardReportGenerator) Quantity(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return g.printer.Sprintf("%d", d.IntPart())
	}
	return g.printer.Sprintf("%.3f", d.Round(3).InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
