package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/foundry-erp/internal/domain"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
	"github.com/jhoicas/foundry-erp/internal/domain/repository"
)

var (
	_ repository.MaterialRepository          = (*MaterialRepo)(nil)
	_ repository.ProductionOrderRepository   = (*ProductionOrderRepo)(nil)
	_ repository.QualityInspectionRepository = (*QualityInspectionRepo)(nil)
	_ repository.SupplierRepository          = (*SupplierRepo)(nil)
	_ repository.CostEntryRepository         = (*CostEntryRepo)(nil)
)

// ── materials ────────────────────────────────────────────────────────────────

type MaterialRepo struct{ db *DB }

func (r *MaterialRepo) ListActive(_ context.Context, ownerID string) ([]entity.Material, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(TableMaterials); err != nil {
		return nil, err
	}
	list := []entity.Material{}
	for _, m := range r.db.materials {
		if m.OwnerID == ownerID && m.IsActive {
			list = append(list, m)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *MaterialRepo) Create(_ context.Context, ownerID string, in entity.MaterialInput) (*entity.Material, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(TableMaterials); err != nil {
		return nil, err
	}
	for _, m := range r.db.materials {
		if m.OwnerID == ownerID && strings.EqualFold(m.Code, in.Code) {
			return nil, domain.ErrDuplicate
		}
	}
	now := r.db.now()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	m := entity.Material{
		ID: uuid.New().String(), OwnerID: ownerID, Code: in.Code, Name: in.Name, Type: in.Type, Unit: in.Unit,
		UnitCost: in.UnitCost, StockQuantity: in.StockQuantity, MinStock: in.MinStock, MaxStock: in.MaxStock,
		Description: in.Description, IsActive: active, CreatedAt: now, UpdatedAt: now,
	}
	r.db.materials = append(r.db.materials, m)
	return &m, nil
}

func (r *MaterialRepo) Update(_ context.Context, ownerID, id string, p entity.MaterialPatch) (*entity.Material, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(TableMaterials); err != nil {
		return nil, err
	}
	for i := range r.db.materials {
		m := &r.db.materials[i]
		if m.ID != id || m.OwnerID != ownerID {
			continue
		}
		set(&m.Code, p.Code)
		set(&m.Name, p.Name)
		set(&m.Type, p.Type)
		set(&m.Unit, p.Unit)
		set(&m.UnitCost, p.UnitCost)
		set(&m.StockQuantity, p.StockQuantity)
		set(&m.MinStock, p.MinStock)
		setPtr(&m.MaxStock, p.MaxStock)
		setPtr(&m.Description, p.Description)
		set(&m.IsActive, p.IsActive)
		m.UpdatedAt = r.db.now()
		out := *m
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func (r *MaterialRepo) Delete(_ context.Context, ownerID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(TableMaterials); err != nil {
		return err
	}
	for i, m := range r.db.materials {
		if m.ID == id && m.OwnerID == ownerID {
			r.db.materials = append(r.db.materials[:i], r.db.materials[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *MaterialRepo) ActiveStockRows(_ context.Context, ownerID string) ([]entity.StockRow, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(TableMaterials); err != nil {
		return nil, err
	}
	rows := []entity.StockRow{}
	for _, m := range r.db.materials {
		if m.OwnerID == ownerID && m.IsActive {
			rows = append(rows, entity.StockRow{StockQuantity: m.StockQuantity, MinStock: m.MinStock})
		}
	}
	return rows, nil
}

// ── production orders ────────────────────────────────────────────────────────

type ProductionOrderRepo struct{ db *DB }

func (r *ProductionOrderRepo) ListWithProduct(_ context.Context, ownerID string) ([]entity.ProductionOrderView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(TableOrders); err != nil {
		return nil, err
	}
	list := []entity.ProductionOrderView{}
	for _, o := range r.db.orders {
		if o.OwnerID != ownerID {
			continue
		}
		v := entity.ProductionOrderView{Order: o}
		for _, m := range r.db.materials {
			if m.ID == o.ProductID {
				v.ProductName, v.ProductUnit = m.Name, m.Unit
				break
			}
		}
		list = append(list, v)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Order.CreatedAt.After(list[j].Order.CreatedAt) })
	return list, nil
}

func (r *ProductionOrderRepo) Create(_ context.Context, ownerID string, in entity.ProductionOrderInput) (*entity.ProductionOrder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(TableOrders); err != nil {
		return nil, err
	}
	for _, o := range r.db.orders {
		if o.OwnerID == ownerID && o.OrderNumber == in.OrderNumber {
			return nil, domain.ErrDuplicate
		}
	}
	now := r.db.now()
	o := entity.ProductionOrder{
		ID: uuid.New().String(), OwnerID: ownerID, OrderNumber: in.OrderNumber, ProductID: in.ProductID,
		Quantity: in.Quantity, Unit: in.Unit, Status: in.Status, Priority: in.Priority, StartDate: in.StartDate,
		ExpectedEndDate: in.ExpectedEndDate, Notes: in.Notes, CreatedAt: now, UpdatedAt: now,
	}
	r.db.orders = append(r.db.orders, o)
	return &o, nil
}

func (r *ProductionOrderRepo) Update(_ context.Context, ownerID, id string, p entity.ProductionOrderPatch) (*entity.ProductionOrder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(TableOrders); err != nil {
		return nil, err
	}
	for i := range r.db.orders {
		o := &r.db.orders[i]
		if o.ID != id || o.OwnerID != ownerID {
			continue
		}
		set(&o.Quantity, p.Quantity)
		set(&o.Status, p.Status)
		set(&o.Priority, p.Priority)
		setPtr(&o.StartDate, p.StartDate)
		setPtr(&o.ExpectedEndDate, p.ExpectedEndDate)
		setPtr(&o.ActualEndDate, p.ActualEndDate)
		setPtr(&o.Notes, p.Notes)
		o.UpdatedAt = r.db.now()
		out := *o
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func (r *ProductionOrderRepo) StatusRows(_ context.Context, ownerID string) ([]entity.OrderStatusRow, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(TableOrders); err != nil {
		return nil, err
	}
	rows := []entity.OrderStatusRow{}
	for _, o := range r.db.orders {
		if o.OwnerID == ownerID {
			rows = append(rows, entity.OrderStatusRow{Status: o.Status, CreatedAt: o.CreatedAt})
		}
	}
	return rows, nil
}

// ── quality inspections ─────────────────────────────────────────────────────

type QualityInspectionRepo struct{ db *DB }

func (r *QualityInspectionRepo) List(_ context.Context, ownerID string) ([]entity.QualityInspection, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(TableInspections); err != nil {
		return nil, err
	}
	list := []entity.QualityInspection{}
	for _, q := range r.db.inspections {
		if q.OwnerID == ownerID {
			list = append(list, q)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].InspectionDate.After(list[j].InspectionDate) })
	return list, nil
}

func (r *QualityInspectionRepo) Create(_ context.Context, ownerID string, in entity.QualityInspectionInput) (*entity.QualityInspection, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(TableInspections); err != nil {
		return nil, err
	}
	q := entity.QualityInspection{
		ID: uuid.New().String(), OwnerID: ownerID, ProductionOrderID: in.ProductionOrderID, MaterialID: in.MaterialID,
		InspectionType: in.InspectionType, Status: in.Status, InspectorName: in.InspectorName,
		InspectionDate: in.InspectionDate, Notes: in.Notes, DefectsFound: in.DefectsFound,
		CorrectiveActions: in.CorrectiveActions, CreatedAt: r.db.now(),
	}
	r.db.inspections = append(r.db.inspections, q)
	return &q, nil
}

func (r *QualityInspectionRepo) Statuses(_ context.Context, ownerID string) ([]entity.InspectionStatus, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(TableInspections); err != nil {
		return nil, err
	}
	out := []entity.InspectionStatus{}
	for _, q := range r.db.inspections {
		if q.OwnerID == ownerID {
			out = append(out, q.Status)
		}
	}
	return out, nil
}

// ── suppliers ───────────────────────────────────────────────────────────────

type SupplierRepo struct{ db *DB }

func (r *SupplierRepo) ListActive(_ context.Context, ownerID string) ([]entity.Supplier, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(TableSuppliers); err != nil {
		return nil, err
	}
	list := []entity.Supplier{}
	for _, s := range r.db.suppliers {
		if s.OwnerID == ownerID && s.IsActive {
			list = append(list, s)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *SupplierRepo) Create(_ context.Context, ownerID string, in entity.SupplierInput) (*entity.Supplier, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(TableSuppliers); err != nil {
		return nil, err
	}
	for _, s := range r.db.suppliers {
		if s.OwnerID == ownerID && strings.EqualFold(s.Code, in.Code) {
			return nil, domain.ErrDuplicate
		}
	}
	now := r.db.now()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	s := entity.Supplier{
		ID: uuid.New().String(), OwnerID: ownerID, Code: in.Code, Name: in.Name, ContactName: in.ContactName,
		Phone: in.Phone, Email: in.Email, Address: in.Address, Rating: in.Rating, IsActive: active,
		Notes: in.Notes, CreatedAt: now, UpdatedAt: now,
	}
	r.db.suppliers = append(r.db.suppliers, s)
	return &s, nil
}

func (r *SupplierRepo) CountActive(_ context.Context, ownerID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(TableSuppliers); err != nil {
		return 0, err
	}
	n := 0
	for _, s := range r.db.suppliers {
		if s.OwnerID == ownerID && s.IsActive {
			n++
		}
	}
	return n, nil
}

// ── cost entries ────────────────────────────────────────────────────────────

type CostEntryRepo struct{ db *DB }

func (r *CostEntryRepo) ListWithCategory(_ context.Context, ownerID string) ([]entity.CostEntryView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(TableCosts); err != nil {
		return nil, err
	}
	list := []entity.CostEntryView{}
	for _, c := range r.db.costs {
		if c.OwnerID != ownerID {
			continue
		}
		cat := r.db.categories[c.CategoryID]
		list = append(list, entity.CostEntryView{Entry: c, CategoryName: cat.name, CategoryType: cat.typ})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Entry.EntryDate.After(list[j].Entry.EntryDate) })
	return list, nil
}

func (r *CostEntryRepo) Create(_ context.Context, ownerID string, in entity.CostEntryInput) (*entity.CostEntry, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(TableCosts); err != nil {
		return nil, err
	}
	if cat, ok := r.db.categories[in.CategoryID]; !ok || cat.ownerID != ownerID {
		return nil, domain.ErrNotFound
	}
	c := entity.CostEntry{
		ID: uuid.New().String(), OwnerID: ownerID, CategoryID: in.CategoryID, ProductionOrderID: in.ProductionOrderID,
		Amount: in.Amount, Description: in.Description, EntryDate: in.EntryDate, CreatedAt: r.db.now(),
	}
	r.db.costs = append(r.db.costs, c)
	return &c, nil
}

func (r *CostEntryRepo) Amounts(_ context.Context, ownerID string) ([]decimal.Decimal, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(TableCosts); err != nil {
		return nil, err
	}
	out := []decimal.Decimal{}
	for _, c := range r.db.costs {
		if c.OwnerID == ownerID {
			out = append(out, c.Amount)
		}
	}
	return out, nil
}

// set copia el valor del patch si viene informado.
func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// setPtr igual que set para columnas opcionales.
func setPtr[T any](dst **T, v *T) {
	if v != nil {
		c := *v
		*dst = &c
	}
}
