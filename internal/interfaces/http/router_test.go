package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foundry-erp/internal/application/auth"
	"github.com/jhoicas/foundry-erp/internal/application/dto"
	"github.com/jhoicas/foundry-erp/internal/application/erp"
	"github.com/jhoicas/foundry-erp/internal/application/gateway"
	"github.com/jhoicas/foundry-erp/internal/domain/entity"
	"github.com/jhoicas/foundry-erp/internal/infrastructure/memory"
	"github.com/jhoicas/foundry-erp/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/foundry-erp/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/foundry-erp/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests-32chars"
	testUserID    = "00000000-0000-0000-0000-000000000001"
)

type testEnv struct {
	app   *fiber.App
	db    *memory.DB
	store *erp.Store
}

// buildTestApp arma la API completa sobre el backend en memoria.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	db := memory.New()
	session := auth.NewSession(auth.NewHMACVerifier(testJWTSecret, ""), zerolog.Nop())
	gw := gateway.New(gateway.Repositories{
		Materials:   db.Materials(),
		Orders:      db.Orders(),
		Inspections: db.Inspections(),
		Suppliers:   db.Suppliers(),
		Costs:       db.Costs(),
	}, session, zerolog.Nop())
	store := erp.New(gw, zerolog.Nop())
	store.Bind(context.Background(), session)
	t.Cleanup(store.Close)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Store:   store,
		Session: session,
		Costs:   gw,
		Reports: pdf.NewDashboardReportGenerator(),
		Company: "Fundição Sul",
	})
	return &testEnv{app: app, db: db, store: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) signIn(t *testing.T) {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "ana@fundicao.com", "", time.Hour)
	require.NoError(t, err)
	resp := e.do(t, http.MethodPost, "/api/session", dto.SignInRequest{AccessToken: tok})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

var ironOre = map[string]any{
	"code": "RM-01", "name": "Iron Ore", "type": "raw_material", "unit": "kg",
	"unit_cost": 2.5, "stock_quantity": 100, "min_stock": 50,
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_TokenInvalido401(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodPost, "/api/session", dto.SignInRequest{AccessToken: "x.y.z"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/session", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSession_BearerHeader(t *testing.T) {
	env := buildTestApp(t)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "ana@fundicao.com", "", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.SessionResponse](t, env.do(t, http.MethodGet, "/api/session", nil))
	assert.Equal(t, testUserID, out.UserID)
	assert.Equal(t, "ana@fundicao.com", out.Email)
}

func TestCrearMaterial_SinSesion401YEstadoIntacto(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodPost, "/api/materials", ironOre)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, env.store.Snapshot().Materials)
	assert.Zero(t, env.db.Calls(memory.TableMaterials))
}

func TestActualizarOrden_SinSesion401ConYSinEstado(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodPatch, "/api/production-orders/abc", map[string]any{"status": "completed"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/production-orders/abc", map[string]any{"notes": "x"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, env.db.Calls(memory.TableOrders))
}

func TestMateriales_CrearActualizarBorrar(t *testing.T) {
	env := buildTestApp(t)
	env.signIn(t)

	resp := env.do(t, http.MethodPost, "/api/materials", ironOre)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	list := decode[[]dto.MaterialResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "Matéria-Prima", list[0].TypeLabel)
	assert.Equal(t, "Estoque OK", list[0].StockBadge.Label)

	resp = env.do(t, http.MethodPost, "/api/materials", ironOre)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/materials/"+list[0].ID, map[string]any{"stock_quantity": 40})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list = decode[[]dto.MaterialResponse](t, resp)
	assert.Equal(t, "Estoque Baixo", list[0].StockBadge.Label)

	stats := decode[entity.DashboardStats](t, env.do(t, http.MethodGet, "/api/dashboard", nil))
	assert.Equal(t, 0, stats.LowStockItems, "el update de material no recalcula estadísticas")

	resp = env.do(t, http.MethodPost, "/api/state/refresh", nil)
	state := decode[dto.StateResponse](t, resp)
	require.NotNil(t, state.DashboardStats)
	assert.Equal(t, 1, state.DashboardStats.LowStockItems)

	resp = env.do(t, http.MethodDelete, "/api/materials/"+list[0].ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = env.do(t, http.MethodDelete, "/api/materials/"+list[0].ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMaterial_InputInvalido400(t *testing.T) {
	env := buildTestApp(t)
	env.signIn(t)
	bad := map[string]any{"code": "RM-01", "name": "Iron Ore", "type": "metal", "unit": "kg"}
	resp := env.do(t, http.MethodPost, "/api/materials", bad)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestOrdenes_MaquinaDeEstados(t *testing.T) {
	env := buildTestApp(t)
	env.signIn(t)

	materials := decode[[]dto.MaterialResponse](t, env.do(t, http.MethodPost, "/api/materials", ironOre))
	resp := env.do(t, http.MethodPost, "/api/production-orders", map[string]any{
		"order_number": "OP-001", "product_id": materials[0].ID, "quantity": 10,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	orders := decode[[]dto.ProductionOrderResponse](t, resp)
	require.Len(t, orders, 1)
	o := orders[0]
	assert.Equal(t, "kg", o.Unit, "la unidad se copia del producto")
	assert.Equal(t, "Iron Ore", o.Product.Name)
	assert.Equal(t, "Pendente", o.StatusBadge.Label)
	require.Len(t, o.Actions, 2)

	// pending → completed no está permitido
	resp = env.do(t, http.MethodPatch, "/api/production-orders/"+o.ID, map[string]any{"status": "completed"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/production-orders/"+o.ID, map[string]any{"status": "in_progress"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodPatch, "/api/production-orders/"+o.ID, map[string]any{"status": "completed"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	orders = decode[[]dto.ProductionOrderResponse](t, resp)
	assert.Equal(t, entity.OrderStatusCompleted, orders[0].Status)
	assert.Empty(t, orders[0].Actions)

	stats := decode[entity.DashboardStats](t, env.do(t, http.MethodGet, "/api/dashboard", nil))
	assert.Equal(t, 1, stats.CompletedToday)

	// terminal
	resp = env.do(t, http.MethodPatch, "/api/production-orders/"+o.ID, map[string]any{"status": "cancelled"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/production-orders/no-existe", map[string]any{"status": "cancelled"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInspeccionesYProveedores(t *testing.T) {
	env := buildTestApp(t)
	env.signIn(t)

	resp := env.do(t, http.MethodPost, "/api/quality-inspections", map[string]any{
		"inspection_type": "final", "status": "rejected", "inspector_name": "Joana",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	inspections := decode[[]dto.QualityInspectionResponse](t, resp)
	require.Len(t, inspections, 1)
	assert.Equal(t, "Rejeitado", inspections[0].StatusBadge.Label)
	assert.Equal(t, "Final", inspections[0].TypeLabel)

	resp = env.do(t, http.MethodPost, "/api/quality-inspections", map[string]any{
		"inspection_type": "final", "status": "approved", "inspector_name": "  ",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/suppliers", map[string]any{"code": "F-01", "name": "Siderúrgica Sul", "rating": 6})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp = env.do(t, http.MethodPost, "/api/suppliers", map[string]any{"code": "F-01", "name": "Siderúrgica Sul", "rating": 4})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	suppliers := decode[[]entity.Supplier](t, resp)
	require.Len(t, suppliers, 1)
	assert.True(t, suppliers[0].IsActive)
}

func TestCostos_AlimentanTotalCosts(t *testing.T) {
	env := buildTestApp(t)
	env.signIn(t)
	env.db.AddCostCategory(testUserID, "cat-1", "Energia", entity.CostCategoryIndirect)

	resp := env.do(t, http.MethodPost, "/api/cost-entries", map[string]any{
		"category_id": "cat-1", "amount": "1234.50", "description": "conta de luz", "entry_date": "2026-03-01T00:00:00Z",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	list := decode[[]entity.CostEntryView](t, env.do(t, http.MethodGet, "/api/cost-entries", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "Energia", list[0].CategoryName)

	stats := decode[entity.DashboardStats](t, env.do(t, http.MethodGet, "/api/dashboard", nil))
	assert.Equal(t, "1234.5", stats.TotalCosts.String())
}

func TestReporte_PDF(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodGet, "/api/dashboard/report.pdf", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	env.signIn(t)
	resp = env.do(t, http.MethodGet, "/api/dashboard/report.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestSignOut_VaciaElEstado(t *testing.T) {
	env := buildTestApp(t)
	env.signIn(t)
	env.do(t, http.MethodPost, "/api/materials", ironOre)
	require.Len(t, env.store.Snapshot().Materials, 1)

	resp := env.do(t, http.MethodDelete, "/api/session", nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	state := decode[dto.StateResponse](t, env.do(t, http.MethodGet, "/api/state", nil))
	assert.Empty(t, state.Materials)
	assert.Nil(t, state.DashboardStats)
	assert.False(t, state.Loading)
}
