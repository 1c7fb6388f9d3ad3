package dto

import (
	"github.com/jhoicas/foundry-erp/internal/application/erp"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
)

// MaterialResponse material con las etiquetas que muestra la interfaz.
type MaterialResponse struct {
	entity.Material
	TypeLabel  string       `json:"type_label"`
	StockBadge entity.Badge `json:"stock_badge"`
}

// TransitionAction acción de cambio de estado que la interfaz puede ofrecer.
type TransitionAction struct {
	Status entity.OrderStatus `json:"status"`
	Label  string             `json:"label"`
}

// ProductionOrderResponse orden con su producto, etiquetas y acciones disponibles.
type ProductionOrderResponse struct {
	entity.ProductionOrder
	Product       ProductRef         `json:"product"`
	StatusBadge   entity.Badge       `json:"status_badge"`
	PriorityBadge entity.Badge       `json:"priority_badge"`
	Actions       []TransitionAction `json:"actions"`
}

// ProductRef nombre y unidad del producto de la orden.
type ProductRef struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// QualityInspectionResponse inspección con etiquetas.
type QualityInspectionResponse struct {
	entity.QualityInspection
	TypeLabel   string       `json:"type_label"`
	StatusBadge entity.Badge `json:"status_badge"`
}

// StateResponse foto completa del store.
type StateResponse struct {
	Materials          []MaterialResponse          `json:"materials"`
	ProductionOrders   []ProductionOrderResponse   `json:"productionOrders"`
	QualityInspections []QualityInspectionResponse `json:"qualityInspections"`
	Suppliers          []entity.Supplier           `json:"suppliers"`
	DashboardStats     *entity.DashboardStats      `json:"dashboardStats"`
	Loading            bool                        `json:"loading"`
}

// actionLabels texto de los botones de transición.
var actionLabels = map[entity.OrderStatus]string{
	entity.OrderStatusInProgress: "Iniciar Produção",
	entity.OrderStatusCompleted:  "Concluir",
	entity.OrderStatusCancelled:  "Cancelar",
}

// ToMaterialResponse agrega etiqueta de tipo y badge de stock.
func ToMaterialResponse(m entity.Material) MaterialResponse {
	return MaterialResponse{Material: m, TypeLabel: m.Type.Label(), StockBadge: m.StockBadge()}
}

// ToProductionOrderResponse aplana la vista y agrega las acciones legales desde su estado.
func ToProductionOrderResponse(v entity.ProductionOrderView) ProductionOrderResponse {
	next := v.Order.Status.NextStatuses()
	actions := make([]TransitionAction, 0, len(next))
	for _, st := range next {
		actions = append(actions, TransitionAction{Status: st, Label: actionLabels[st]})
	}
	return ProductionOrderResponse{
		ProductionOrder: v.Order,
		Product:         ProductRef{Name: v.ProductName, Unit: v.ProductUnit},
		StatusBadge:     v.Order.Status.Badge(),
		PriorityBadge:   v.Order.Priority.Badge(),
		Actions:         actions,
	}
}

// ToQualityInspectionResponse agrega etiquetas de tipo y resultado.
func ToQualityInspectionResponse(q entity.QualityInspection) QualityInspectionResponse {
	return QualityInspectionResponse{QualityInspection: q, TypeLabel: q.InspectionType.Label(), StatusBadge: q.Status.Badge()}
}

func ToMaterialList(list []entity.Material) []MaterialResponse {
	out := make([]MaterialResponse, len(list))
	for i, m := range list {
		out[i] = ToMaterialResponse(m)
	}
	return out
}

func ToProductionOrderList(list []entity.ProductionOrderView) []ProductionOrderResponse {
	out := make([]ProductionOrderResponse, len(list))
	for i, v := range list {
		out[i] = ToProductionOrderResponse(v)
	}
	return out
}

func ToQualityInspectionList(list []entity.QualityInspection) []QualityInspectionResponse {
	out := make([]QualityInspectionResponse, len(list))
	for i, q := range list {
		out[i] = ToQualityInspectionResponse(q)
	}
	return out
}

// ToStateResponse convierte la foto del store.
func ToStateResponse(s erp.Snapshot) StateResponse {
	return StateResponse{
		Materials:          ToMaterialList(s.Materials),
		ProductionOrders:   ToProductionOrderList(s.ProductionOrders),
		QualityInspections: ToQualityInspectionList(s.QualityInspections),
		Suppliers:          s.Suppliers,
		DashboardStats:     s.DashboardStats,
		Loading:            s.Loading,
	}
}
