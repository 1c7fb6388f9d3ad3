package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foundry-erp/internal/application/erp"
)

// StoreScope abre el scope del store para cada petición; los handlers lo obtienen con
// erp.FromContext(c.UserContext()).
func StoreScope(store *erp.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(erp.WithStore(c.UserContext(), store))
		return c.Next()
	}
}

func storeOf(c *fiber.Ctx) *erp.Store {
	return erp.FromContext(c.UserContext())
}
