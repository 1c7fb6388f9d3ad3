// Package gateway es la fachada de datos remotos: resuelve el dueño de la sesión y delega en
// los repositorios. Nunca hace panic; toda falla vuelve como error.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/foundry-erp/internal/domain"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
	"github.com/jhoicas/foundry-erp/internal/domain/repository"
)

// OwnerSource expone el dueño autenticado actual (la sesión).
type OwnerSource interface {
	OwnerID() (string, bool)
}

// Repositories agrupa los puertos de persistencia que usa el gateway.
type Repositories struct {
	Materials   repository.MaterialRepository
	Orders      repository.ProductionOrderRepository
	Inspections repository.QualityInspectionRepository
	Suppliers   repository.SupplierRepository
	Costs       repository.CostEntryRepository
}

// Gateway acceso a las tablas del dueño actual.
type Gateway struct {
	repos  Repositories
	owners OwnerSource
	log    zerolog.Logger
	now    func() time.Time
}

// New construye el gateway.
func New(repos Repositories, owners OwnerSource, log zerolog.Logger) *Gateway {
	return &Gateway{repos: repos, owners: owners, log: log, now: time.Now}
}

// WithClock reemplaza el reloj usado para "completadas hoy".
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	g.now = now
	return g
}

// owner resuelve el dueño antes de cualquier llamada remota.
func (g *Gateway) owner() (string, error) {
	id, ok := g.owners.OwnerID()
	if !ok || id == "" {
		return "", domain.ErrNotAuthenticated
	}
	return id, nil
}

// ── Materials ────────────────────────────────────────────────────────────────

// GetMaterials materiales activos ordenados por nombre.
func (g *Gateway) GetMaterials(ctx context.Context) ([]entity.Material, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	return g.repos.Materials.ListActive(ctx, ownerID)
}

func (g *Gateway) CreateMaterial(ctx context.Context, in entity.MaterialInput) (*entity.Material, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	if !in.Validate() {
		return nil, domain.ErrInvalidInput
	}
	return g.repos.Materials.Create(ctx, ownerID, in)
}

func (g *Gateway) UpdateMaterial(ctx context.Context, id string, patch entity.MaterialPatch) (*entity.Material, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	if id == "" || !patch.Validate() {
		return nil, domain.ErrInvalidInput
	}
	return g.repos.Materials.Update(ctx, ownerID, id, patch)
}

// DeleteMaterial borrado físico.
func (g *Gateway) DeleteMaterial(ctx context.Context, id string) error {
	ownerID, err := g.owner()
	if err != nil {
		return err
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	return g.repos.Materials.Delete(ctx, ownerID, id)
}

// ── Production orders ────────────────────────────────────────────────────────

// GetProductionOrders órdenes con su producto, más recientes primero.
func (g *Gateway) GetProductionOrders(ctx context.Context) ([]entity.ProductionOrderView, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	return g.repos.Orders.ListWithProduct(ctx, ownerID)
}

func (g *Gateway) CreateProductionOrder(ctx context.Context, in entity.ProductionOrderInput) (*entity.ProductionOrder, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	in.Normalize()
	if !in.Validate() {
		return nil, domain.ErrInvalidInput
	}
	return g.repos.Orders.Create(ctx, ownerID, in)
}

func (g *Gateway) UpdateProductionOrder(ctx context.Context, id string, patch entity.ProductionOrderPatch) (*entity.ProductionOrder, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	if id == "" || !patch.Validate() {
		return nil, domain.ErrInvalidInput
	}
	return g.repos.Orders.Update(ctx, ownerID, id, patch)
}

// ── Quality inspections ─────────────────────────────────────────────────────

// GetQualityInspections inspecciones, más recientes primero.
func (g *Gateway) GetQualityInspections(ctx context.Context) ([]entity.QualityInspection, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	return g.repos.Inspections.List(ctx, ownerID)
}

func (g *Gateway) CreateQualityInspection(ctx context.Context, in entity.QualityInspectionInput) (*entity.QualityInspection, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	if !in.Validate() {
		return nil, domain.ErrInvalidInput
	}
	if in.InspectionDate.IsZero() {
		in.InspectionDate = g.now()
	}
	return g.repos.Inspections.Create(ctx, ownerID, in)
}

// ── Suppliers ───────────────────────────────────────────────────────────────

// GetSuppliers proveedores activos ordenados por nombre.
func (g *Gateway) GetSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	return g.repos.Suppliers.ListActive(ctx, ownerID)
}

func (g *Gateway) CreateSupplier(ctx context.Context, in entity.SupplierInput) (*entity.Supplier, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	if !in.Validate() {
		return nil, domain.ErrInvalidInput
	}
	return g.repos.Suppliers.Create(ctx, ownerID, in)
}

// ── Costs ───────────────────────────────────────────────────────────────────

// GetCostEntries costos con nombre y tipo de categoría, más recientes primero.
func (g *Gateway) GetCostEntries(ctx context.Context) ([]entity.CostEntryView, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	return g.repos.Costs.ListWithCategory(ctx, ownerID)
}

func (g *Gateway) CreateCostEntry(ctx context.Context, in entity.CostEntryInput) (*entity.CostEntry, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}
	if !in.Validate() {
		return nil, domain.ErrInvalidInput
	}
	return g.repos.Costs.Create(ctx, ownerID, in)
}

// ── Dashboard ───────────────────────────────────────────────────────────────

// GetDashboardStats calcula los KPIs del dueño.
//
// Cinco lecturas en paralelo:
//  1. StatusRows        → activas / pendientes / completadas hoy
//  2. ActiveStockRows   → stock bajo
//  3. Statuses          → tasa de aprobación
//  4. CountActive       → proveedores activos
//  5. Amounts           → costos totales
//
// Una lectura fallida se registra y cuenta como vacía.
func (g *Gateway) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	ownerID, err := g.owner()
	if err != nil {
		return nil, err
	}

	type ordersResult struct {
		rows []entity.OrderStatusRow
		err  error
	}
	type stockResult struct {
		rows []entity.StockRow
		err  error
	}
	type statusesResult struct {
		rows []entity.InspectionStatus
		err  error
	}
	type countResult struct {
		n   int
		err error
	}
	type amountsResult struct {
		rows []decimal.Decimal
		err  error
	}

	ordersCh := make(chan ordersResult, 1)
	stockCh := make(chan stockResult, 1)
	statusesCh := make(chan statusesResult, 1)
	suppliersCh := make(chan countResult, 1)
	amountsCh := make(chan amountsResult, 1)

	go func() {
		rows, err := g.repos.Orders.StatusRows(ctx, ownerID)
		ordersCh <- ordersResult{rows, err}
	}()
	go func() {
		rows, err := g.repos.Materials.ActiveStockRows(ctx, ownerID)
		stockCh <- stockResult{rows, err}
	}()
	go func() {
		rows, err := g.repos.Inspections.Statuses(ctx, ownerID)
		statusesCh <- statusesResult{rows, err}
	}()
	go func() {
		n, err := g.repos.Suppliers.CountActive(ctx, ownerID)
		suppliersCh <- countResult{n, err}
	}()
	go func() {
		rows, err := g.repos.Costs.Amounts(ctx, ownerID)
		amountsCh <- amountsResult{rows, err}
	}()

	orders := <-ordersCh
	stock := <-stockCh
	statuses := <-statusesCh
	suppliers := <-suppliersCh
	amounts := <-amountsCh

	g.warnIf(orders.err, "production_orders")
	g.warnIf(stock.err, "materials")
	g.warnIf(statuses.err, "quality_inspections")
	g.warnIf(suppliers.err, "suppliers")
	g.warnIf(amounts.err, "cost_entries")

	src := entity.DashboardSource{
		Orders:             orders.rows,
		ActiveMaterials:    stock.rows,
		InspectionStatuses: statuses.rows,
		CostAmounts:        amounts.rows,
	}
	if suppliers.err == nil {
		src.ActiveSuppliers = suppliers.n
	}

	stats := entity.ComputeDashboardStats(src, g.now())
	return &stats, nil
}

func (g *Gateway) warnIf(err error, table string) {
	if err != nil {
		g.log.Warn().Err(fmt.Errorf("dashboard: %s: %w", table, err)).Msg("lectura de estadísticas fallida, se cuenta vacía")
	}
}
