package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foundry-erp/internal/domain/entity"
)

// CostGateway asientos de costo; no forman parte de la foto del store.
type CostGateway interface {
	GetCostEntries(ctx context.Context) ([]entity.CostEntryView, error)
	CreateCostEntry(ctx context.Context, in entity.CostEntryInput) (*entity.CostEntry, error)
}

// CostHandler lectura y alta de costos directo contra el gateway.
type CostHandler struct {
	gw CostGateway
}

// NewCostHandler construye el handler.
func NewCostHandler(gw CostGateway) *CostHandler {
	return &CostHandler{gw: gw}
}

// List GET /api/cost-entries
func (h *CostHandler) List(c *fiber.Ctx) error {
	list, err := h.gw.GetCostEntries(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Create registra el asiento y recalcula las estadísticas del store (totalCosts).
// POST /api/cost-entries
func (h *CostHandler) Create(c *fiber.Ctx) error {
	var in entity.CostEntryInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.gw.CreateCostEntry(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	storeOf(c).Refresh(c.UserContext())
	return c.Status(fiber.StatusCreated).JSON(out)
}
