// Package memory implementa los puertos de repositorio en memoria. Lo usan los tests de las capas
// superiores y el modo demo del servidor (`foundry serve --memory`).
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/foundry-erp/internal/domain/entity"
)

const (
	TableMaterials   = "materials"
	TableOrders      = "production_orders"
	TableInspections = "quality_inspections"
	TableSuppliers   = "suppliers"
	TableCosts       = "cost_entries"
)

type costCategory struct {
	ownerID string
	name    string
	typ     entity.CostCategoryType
}

// DB tablas del backend simuladas. Las filas guardan su user_id; cada lectura filtra por dueño.
type DB struct {
	mu          sync.RWMutex
	materials   []entity.Material
	orders      []entity.ProductionOrder
	inspections []entity.QualityInspection
	suppliers   []entity.Supplier
	costs       []entity.CostEntry
	categories  map[string]costCategory
	failures    map[string]error
	writeFails  map[string]error
	calls       map[string]int
	now         func() time.Time
}

// New crea una base vacía.
func New() *DB {
	return &DB{
		categories: make(map[string]costCategory),
		failures:   make(map[string]error),
		writeFails: make(map[string]error),
		calls:      make(map[string]int),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock fija el reloj usado para created_at / updated_at.
func (db *DB) WithClock(now func() time.Time) *DB {
	db.now = now
	return db
}

// FailReads hace que toda lectura de la tabla devuelva err; nil la restablece.
func (db *DB) FailReads(table string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err == nil {
		delete(db.failures, table)
		return
	}
	db.failures[table] = err
}

// FailWrites hace que toda escritura de la tabla devuelva err sin tocar las filas; nil la restablece.
func (db *DB) FailWrites(table string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err == nil {
		delete(db.writeFails, table)
		return
	}
	db.writeFails[table] = err
}

// Calls número de operaciones recibidas por la tabla (lecturas y escrituras).
func (db *DB) Calls(table string) int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.calls[table]
}

// AddCostCategory registra una categoría de costo del dueño.
func (db *DB) AddCostCategory(ownerID, id, name string, typ entity.CostCategoryType) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.categories[id] = costCategory{ownerID: ownerID, name: name, typ: typ}
}

// read registra la llamada y devuelve la falla inyectada. Requiere db.mu tomado.
func (db *DB) read(table string) error {
	db.calls[table]++
	return db.failures[table]
}

// write igual que read para escrituras.
func (db *DB) write(table string) error {
	db.calls[table]++
	return db.writeFails[table]
}

// Repositories adaptadores de cada tabla sobre esta base.
func (db *DB) Materials() *MaterialRepo { return &MaterialRepo{db: db} }
func (db *DB) Orders() *ProductionOrderRepo { return &ProductionOrderRepo{db: db} }
func (db *DB) Inspections() *QualityInspectionRepo { return &QualityInspectionRepo{db: db} }
func (db *DB) Suppliers() *SupplierRepo { return &SupplierRepo{db: db} }
func (db *DB) Costs() *CostEntryRepo { return &CostEntryRepo{db: db} }
