// Package erp contiene el store de estado del dominio: la foto en memoria de las cinco colecciones
// del dueño actual y las mutaciones que la mantienen alineada con el backend remoto.
package erp

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/jhoicas/foundry-erp/internal/domain/entity"
)

// Gateway lo que el store necesita del gateway remoto.
type Gateway interface {
	GetMaterials(ctx context.Context) ([]entity.Material, error)
	CreateMaterial(ctx context.Context, in entity.MaterialInput) (*entity.Material, error)
	UpdateMaterial(ctx context.Context, id string, patch entity.MaterialPatch) (*entity.Material, error)
	DeleteMaterial(ctx context.Context, id string) error

	GetProductionOrders(ctx context.Context) ([]entity.ProductionOrderView, error)
	CreateProductionOrder(ctx context.Context, in entity.ProductionOrderInput) (*entity.ProductionOrder, error)
	UpdateProductionOrder(ctx context.Context, id string, patch entity.ProductionOrderPatch) (*entity.ProductionOrder, error)

	GetQualityInspections(ctx context.Context) ([]entity.QualityInspection, error)
	CreateQualityInspection(ctx context.Context, in entity.QualityInspectionInput) (*entity.QualityInspection, error)

	GetSuppliers(ctx context.Context) ([]entity.Supplier, error)
	CreateSupplier(ctx context.Context, in entity.SupplierInput) (*entity.Supplier, error)

	GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error)
}

// OwnerEvents fuente de cambios de dueño (la sesión).
type OwnerEvents interface {
	OwnerID() (string, bool)
	Subscribe(fn func(ctx context.Context, ownerID string)) func()
}

// Snapshot copia de las colecciones en un instante. DashboardStats es nil hasta la primera carga.
type Snapshot struct {
	Materials          []entity.Material            `json:"materials"`
	ProductionOrders   []entity.ProductionOrderView `json:"productionOrders"`
	QualityInspections []entity.QualityInspection   `json:"qualityInspections"`
	Suppliers          []entity.Supplier            `json:"suppliers"`
	DashboardStats     *entity.DashboardStats       `json:"dashboardStats"`
	Loading            bool                         `json:"loading"`
}

// Store dueño de la foto del dominio. Se crea al arrancar la aplicación y se cierra al apagarla.
//
// Cada cambio de dueño incrementa gen; una recarga o mutación iniciada con un gen anterior
// descarta su resultado en lugar de pisar el estado del dueño nuevo.
type Store struct {
	gw  Gateway
	log zerolog.Logger

	mu       sync.RWMutex
	snap     Snapshot
	hasOwner bool
	gen      uint64
	inflight int // recargas en curso del gen actual

	unsubscribe func()
}

// New construye el store vacío y en estado de carga hasta el primer evento de dueño.
func New(gw Gateway, log zerolog.Logger) *Store {
	s := &Store{gw: gw, log: log}
	s.snap = emptySnapshot()
	s.snap.Loading = true
	return s
}

func emptySnapshot() Snapshot {
	return Snapshot{
		Materials:          []entity.Material{},
		ProductionOrders:   []entity.ProductionOrderView{},
		QualityInspections: []entity.QualityInspection{},
		Suppliers:          []entity.Supplier{},
	}
}

// Bind suscribe el store a los cambios de dueño y procesa el dueño actual.
func (s *Store) Bind(ctx context.Context, ev OwnerEvents) {
	s.mu.Lock()
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.unsubscribe = ev.Subscribe(s.OnOwnerChange)
	s.mu.Unlock()

	ownerID, _ := ev.OwnerID()
	s.OnOwnerChange(ctx, ownerID)
}

// Close da de baja la suscripción. Las recargas en curso terminan sin efecto.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.gen++
}

// OnOwnerChange limpia todo sin llamar al gateway si ownerID es "", y si no recarga.
func (s *Store) OnOwnerChange(ctx context.Context, ownerID string) {
	s.mu.Lock()
	s.gen++
	s.inflight = 0
	s.hasOwner = ownerID != ""
	s.mu.Unlock()

	s.log.Debug().Str("owner_id", ownerID).Msg("cambio de dueño")
	s.Refresh(ctx)
}

// Refresh recarga las cinco colecciones en paralelo y espera a todas.
// Una lectura fallida deja su colección como estaba.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	if !s.hasOwner {
		s.snap = emptySnapshot()
		s.mu.Unlock()
		return
	}
	gen := s.gen
	s.inflight++
	s.snap.Loading = true
	s.mu.Unlock()

	var (
		materials   []entity.Material
		orders      []entity.ProductionOrderView
		inspections []entity.QualityInspection
		suppliers   []entity.Supplier
		stats       *entity.DashboardStats

		materialsErr, ordersErr, inspectionsErr, suppliersErr, statsErr error
	)

	wg := conc.NewWaitGroup()
	wg.Go(func() { materials, materialsErr = s.gw.GetMaterials(ctx) })
	wg.Go(func() { orders, ordersErr = s.gw.GetProductionOrders(ctx) })
	wg.Go(func() { inspections, inspectionsErr = s.gw.GetQualityInspections(ctx) })
	wg.Go(func() { suppliers, suppliersErr = s.gw.GetSuppliers(ctx) })
	wg.Go(func() { stats, statsErr = s.gw.GetDashboardStats(ctx) })
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug().Uint64("gen", gen).Msg("recarga descartada: cambió el dueño")
		return
	}

	if s.keep("materials", materialsErr) {
		s.snap.Materials = materials
	}
	if s.keep("production_orders", ordersErr) {
		s.snap.ProductionOrders = orders
	}
	if s.keep("quality_inspections", inspectionsErr) {
		s.snap.QualityInspections = inspections
	}
	if s.keep("suppliers", suppliersErr) {
		s.snap.Suppliers = suppliers
	}
	if s.keep("dashboard_stats", statsErr) && stats != nil {
		s.snap.DashboardStats = stats
	}

	s.inflight--
	s.snap.Loading = s.inflight > 0
}

// keep registra el error de lectura; true si hay que reemplazar la colección.
func (s *Store) keep(collection string, err error) bool {
	if err != nil {
		s.log.Warn().Err(err).Str("collection", collection).Msg("lectura fallida, se conserva la foto anterior")
		return false
	}
	return true
}

// Snapshot devuelve una copia de la foto actual.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Snapshot{
		Materials:          append([]entity.Material(nil), s.snap.Materials...),
		ProductionOrders:   append([]entity.ProductionOrderView(nil), s.snap.ProductionOrders...),
		QualityInspections: append([]entity.QualityInspection(nil), s.snap.QualityInspections...),
		Suppliers:          append([]entity.Supplier(nil), s.snap.Suppliers...),
		Loading:            s.snap.Loading,
	}
	if s.snap.DashboardStats != nil {
		st := *s.snap.DashboardStats
		out.DashboardStats = &st
	}
	if out.Materials == nil {
		out.Materials = []entity.Material{}
	}
	if out.ProductionOrders == nil {
		out.ProductionOrders = []entity.ProductionOrderView{}
	}
	if out.QualityInspections == nil {
		out.QualityInspections = []entity.QualityInspection{}
	}
	if out.Suppliers == nil {
		out.Suppliers = []entity.Supplier{}
	}
	return out
}

// Loading true mientras haya una recarga del dueño actual en curso.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Loading
}

func (s *Store) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// apply ejecuta fn bajo el lock solo si el dueño no cambió desde gen.
func (s *Store) apply(gen uint64, fn func(snap *Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	fn(&s.snap)
}

// refreshStats vuelve a leer las estadísticas; si falla se conservan las anteriores.
func (s *Store) refreshStats(ctx context.Context, gen uint64) {
	stats, err := s.gw.GetDashboardStats(ctx)
	if !s.keep("dashboard_stats", err) || stats == nil {
		return
	}
	s.apply(gen, func(snap *Snapshot) { snap.DashboardStats = stats })
}
