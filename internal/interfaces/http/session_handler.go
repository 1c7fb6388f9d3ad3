package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foundry-erp/internal/application/auth"
	"github.com/jhoicas/foundry-erp/internal/application/dto"
	"github.com/jhoicas/foundry-erp/internal/domain"
)

// SessionService lo que la API necesita de la sesión.
type SessionService interface {
	SignIn(ctx context.Context, token string) (auth.Owner, error)
	SignOut(ctx context.Context)
	Owner() (auth.Owner, bool)
}

// SessionHandler inicio y cierre de sesión. Al cambiar el dueño el store se recarga antes de responder.
type SessionHandler struct {
	session SessionService
}

// NewSessionHandler construye el handler.
func NewSessionHandler(session SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

// SignIn acepta el token en el cuerpo o como "Authorization: Bearer <token>".
// POST /api/session
func (h *SessionHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	token := strings.TrimSpace(in.AccessToken)
	if token == "" {
		parts := strings.SplitN(c.Get("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = strings.TrimSpace(parts[1])
		}
	}
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "access_token requerido"})
	}
	owner, err := h.session.SignIn(c.UserContext(), token)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SessionResponse{UserID: owner.ID, Email: owner.Email})
}

// Current devuelve el dueño de la sesión.
// GET /api/session
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	owner, ok := h.session.Owner()
	if !ok {
		return writeError(c, domain.ErrNotAuthenticated)
	}
	return c.JSON(dto.SessionResponse{UserID: owner.ID, Email: owner.Email})
}

// SignOut cierra la sesión; el store queda vacío.
// DELETE /api/session
func (h *SessionHandler) SignOut(c *fiber.Ctx) error {
	h.session.SignOut(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}
