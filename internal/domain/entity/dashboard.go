package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats KPIs derivados; nunca se persisten.
// TotalRevenue queda en cero: no hay módulo de ventas.
type DashboardStats struct {
	ActiveOrders        int             `json:"activeOrders"`
	PendingOrders       int             `json:"pendingOrders"`
	CompletedToday      int             `json:"completedToday"`
	LowStockItems       int             `json:"lowStockItems"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	TotalCosts          decimal.Decimal `json:"totalCosts"`
	QualityApprovalRate float64         `json:"qualityApprovalRate"`
	ActiveSuppliers     int             `json:"activeSuppliers"`
}

// OrderStatusRow proyección mínima de una orden para el dashboard.
type OrderStatusRow struct {
	Status    OrderStatus
	CreatedAt time.Time
}

// StockRow proyección mínima de un material activo.
type StockRow struct {
	StockQuantity decimal.Decimal
	MinStock      decimal.Decimal
}

// DashboardSource filas crudas del dueño a partir de las cuales se calculan los KPIs.
type DashboardSource struct {
	Orders             []OrderStatusRow
	ActiveMaterials    []StockRow
	InspectionStatuses []InspectionStatus
	ActiveSuppliers    int
	CostAmounts        []decimal.Decimal
}

// isoDate formato de fecha usado para "completadas hoy".
const isoDate = "2006-01-02"

// ComputeDashboardStats calcula los KPIs. "Hoy" es un prefijo de fecha ISO en UTC
// comparado contra created_at serializado; no hay ajuste de zona horaria.
func ComputeDashboardStats(src DashboardSource, now time.Time) DashboardStats {
	today := now.UTC().Format(isoDate)
	stats := DashboardStats{
		TotalRevenue:        decimal.Zero,
		TotalCosts:          decimal.Zero,
		QualityApprovalRate: 100,
		ActiveSuppliers:     src.ActiveSuppliers,
	}

	for _, o := range src.Orders {
		switch o.Status {
		case OrderStatusInProgress:
			stats.ActiveOrders++
		case OrderStatusPending:
			stats.PendingOrders++
		case OrderStatusCompleted:
			if strings.HasPrefix(o.CreatedAt.UTC().Format(time.RFC3339Nano), today) {
				stats.CompletedToday++
			}
		}
	}

	for _, m := range src.ActiveMaterials {
		if m.StockQuantity.LessThanOrEqual(m.MinStock) {
			stats.LowStockItems++
		}
	}

	for _, amount := range src.CostAmounts {
		stats.TotalCosts = stats.TotalCosts.Add(amount)
	}

	if total := len(src.InspectionStatuses); total > 0 {
		approved := 0
		for _, s := range src.InspectionStatuses {
			if s == InspectionStatusApproved {
				approved++
			}
		}
		stats.QualityApprovalRate = float64(approved) / float64(total) * 100
	}

	return stats
}
