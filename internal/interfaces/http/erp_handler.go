package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foundry-erp/internal/application/dto"
	"github.com/jhoicas/foundry-erp/internal/domain"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
)

// ERPHandler lee la foto del store y dispara sus mutaciones. Cada mutación responde con la
// colección afectada tal como quedó en el store.
type ERPHandler struct {
	session SessionService
}

// NewERPHandler construye el handler.
func NewERPHandler(session SessionService) *ERPHandler {
	return &ERPHandler{session: session}
}

// signedIn false cuando no hay dueño; las validaciones contra la foto no aplican sin él.
func (h *ERPHandler) signedIn() bool {
	if h.session == nil {
		return false
	}
	_, ok := h.session.Owner()
	return ok
}

// State GET /api/state
func (h *ERPHandler) State(c *fiber.Ctx) error {
	return c.JSON(dto.ToStateResponse(storeOf(c).Snapshot()))
}

// Refresh recarga las cinco colecciones.
// POST /api/state/refresh
func (h *ERPHandler) Refresh(c *fiber.Ctx) error {
	store := storeOf(c)
	store.Refresh(c.UserContext())
	return c.JSON(dto.ToStateResponse(store.Snapshot()))
}

// Dashboard GET /api/dashboard
func (h *ERPHandler) Dashboard(c *fiber.Ctx) error {
	stats := storeOf(c).Snapshot().DashboardStats
	if stats == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estadísticas no cargadas"})
	}
	return c.JSON(stats)
}

// ── Materials ────────────────────────────────────────────────────────────────

// ListMaterials GET /api/materials
func (h *ERPHandler) ListMaterials(c *fiber.Ctx) error {
	return c.JSON(dto.ToMaterialList(storeOf(c).Snapshot().Materials))
}

// CreateMaterial POST /api/materials
func (h *ERPHandler) CreateMaterial(c *fiber.Ctx) error {
	var in entity.MaterialInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	store := storeOf(c)
	if err := store.AddMaterial(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMaterialList(store.Snapshot().Materials))
}

// UpdateMaterial PATCH /api/materials/:id
func (h *ERPHandler) UpdateMaterial(c *fiber.Ctx) error {
	var patch entity.MaterialPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}
	store := storeOf(c)
	if err := store.UpdateMaterial(c.UserContext(), c.Params("id"), patch); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToMaterialList(store.Snapshot().Materials))
}

// DeleteMaterial DELETE /api/materials/:id
func (h *ERPHandler) DeleteMaterial(c *fiber.Ctx) error {
	if err := storeOf(c).DeleteMaterial(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Production orders ────────────────────────────────────────────────────────

// ListProductionOrders GET /api/production-orders
func (h *ERPHandler) ListProductionOrders(c *fiber.Ctx) error {
	return c.JSON(dto.ToProductionOrderList(storeOf(c).Snapshot().ProductionOrders))
}

// CreateProductionOrder crea la orden; si no viene unidad se copia la del producto.
// POST /api/production-orders
func (h *ERPHandler) CreateProductionOrder(c *fiber.Ctx) error {
	var in entity.ProductionOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	store := storeOf(c)
	if in.Unit == "" {
		for _, m := range store.Snapshot().Materials {
			if m.ID == in.ProductID {
				in.Unit = m.Unit
				break
			}
		}
	}
	if err := store.AddProductionOrder(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductionOrderList(store.Snapshot().ProductionOrders))
}

// UpdateProductionOrder solo acepta cambios de estado que la máquina de estados permite.
// PATCH /api/production-orders/:id
func (h *ERPHandler) UpdateProductionOrder(c *fiber.Ctx) error {
	var patch entity.ProductionOrderPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}
	id := c.Params("id")
	store := storeOf(c)
	if patch.Status != nil {
		if !h.signedIn() {
			return writeError(c, domain.ErrNotAuthenticated)
		}
		current, ok := findOrder(store.Snapshot().ProductionOrders, id)
		if !ok {
			return writeError(c, domain.ErrNotFound)
		}
		if !current.Status.CanTransitionTo(*patch.Status) {
			return writeError(c, domain.ErrInvalidTransition)
		}
	}
	if err := store.UpdateProductionOrder(c.UserContext(), id, patch); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductionOrderList(store.Snapshot().ProductionOrders))
}

func findOrder(list []entity.ProductionOrderView, id string) (entity.ProductionOrder, bool) {
	for _, v := range list {
		if v.Order.ID == id {
			return v.Order, true
		}
	}
	return entity.ProductionOrder{}, false
}

// ── Quality inspections ─────────────────────────────────────────────────────

// ListQualityInspections GET /api/quality-inspections
func (h *ERPHandler) ListQualityInspections(c *fiber.Ctx) error {
	return c.JSON(dto.ToQualityInspectionList(storeOf(c).Snapshot().QualityInspections))
}

// CreateQualityInspection POST /api/quality-inspections
func (h *ERPHandler) CreateQualityInspection(c *fiber.Ctx) error {
	var in entity.QualityInspectionInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	store := storeOf(c)
	if err := store.AddQualityInspection(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToQualityInspectionList(store.Snapshot().QualityInspections))
}

// ── Suppliers ───────────────────────────────────────────────────────────────

// ListSuppliers GET /api/suppliers
func (h *ERPHandler) ListSuppliers(c *fiber.Ctx) error {
	return c.JSON(storeOf(c).Snapshot().Suppliers)
}

// CreateSupplier POST /api/suppliers
func (h *ERPHandler) CreateSupplier(c *fiber.Ctx) error {
	var in entity.SupplierInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	store := storeOf(c)
	if err := store.AddSupplier(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(store.Snapshot().Suppliers)
}
