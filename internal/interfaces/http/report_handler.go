package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foundry-erp/internal/domain"
	"github.com/jhoicas/foundry-erp/internal/infrastructure/pdf"
)

// ReportGenerator genera el PDF del tablero.
type ReportGenerator interface {
	Generate(ctx context.Context, in pdf.ReportInput) ([]byte, error)
}

// ReportHandler descarga del reporte del tablero.
type ReportHandler struct {
	gen     ReportGenerator
	session SessionService
	company string
	now     func() time.Time
}

// NewReportHandler construye el handler; company va en el encabezado del PDF.
func NewReportHandler(gen ReportGenerator, session SessionService, company string) *ReportHandler {
	return &ReportHandler{gen: gen, session: session, company: company, now: time.Now}
}

// Download GET /api/dashboard/report.pdf
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	owner, ok := h.session.Owner()
	if !ok {
		return writeError(c, domain.ErrNotAuthenticated)
	}
	out, err := h.gen.Generate(c.UserContext(), pdf.ReportInput{
		Company:     h.company,
		OwnerEmail:  owner.Email,
		GeneratedAt: h.now(),
		Snapshot:    storeOf(c).Snapshot(),
	})
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="painel.pdf"`)
	return c.Send(out)
}
