package http_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
)

func widget() jsonBody {
	return jsonBody{
		"productId":    "W-1",
		"name":         "Widget",
		"costPrice":    2.5,
		"sellingPrice": 4,
		"quantity":     7,
		"category":     "Tools",
	}
}

func createProduct(t *testing.T, env *testEnv, admin string, body jsonBody) dto.ProductResponse {
	t.Helper()
	resp := doJSON(t, env.app, http.MethodPost, "/api/products", admin, body)
	var p dto.ProductResponse
	env2 := decode(t, resp, &p)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env2.Message)
	return p
}

func TestProducts_CrearSoloAdmin(t *testing.T) {
	env := newTestEnv(t, 0)
	employee, _ := env.register(t, "ana", "employee")
	admin, _ := env.register(t, "root", "admin")

	resp := doJSON(t, env.app, http.MethodPost, "/api/products", employee, widget())
	body := decode(t, resp, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, body.Success)

	p := createProduct(t, env, admin, widget())
	assert.Equal(t, "W-1", p.ProductID)
	assert.Equal(t, "Low Stock", p.StockStatus)
	assert.True(t, p.CostPrice.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, p.SellingPrice.Equal(decimal.NewFromInt(4)))
}

func TestProducts_SinToken(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := doJSON(t, env.app, http.MethodGet, "/api/products", "", nil)
	body := decode(t, resp, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", body.Code)
}

func TestProducts_CrearValidaciones(t *testing.T) {
	env := newTestEnv(t, 0)
	admin, _ := env.register(t, "root", "admin")

	resp := doJSON(t, env.app, http.MethodPost, "/api/products", admin, jsonBody{"name": "Sin precios"})
	body := decode(t, resp, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Fields, "costPrice")
	assert.Contains(t, body.Fields, "sellingPrice")

	neg := widget()
	neg["costPrice"] = -1
	resp = doJSON(t, env.app, http.MethodPost, "/api/products", admin, neg)
	body = decode(t, resp, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Fields, "costPrice")

	createProduct(t, env, admin, widget())
	resp = doJSON(t, env.app, http.MethodPost, "/api/products", admin, widget())
	body = decode(t, resp, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Product with this Product ID already exists", body.Message)
}

func TestProducts_CrearSinProductIDGeneraCodigo(t *testing.T) {
	env := newTestEnv(t, 0)
	admin, _ := env.register(t, "root", "admin")

	body := widget()
	delete(body, "productId")
	delete(body, "quantity")
	p := createProduct(t, env, admin, body)
	assert.True(t, strings.HasPrefix(p.ProductID, "PRD"), p.ProductID)
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, "Out of Stock", p.StockStatus)
}

func TestProducts_ListarYObtener(t *testing.T) {
	env := newTestEnv(t, 0)
	admin, _ := env.register(t, "root", "admin")
	employee, _ := env.register(t, "ana", "employee")
	created := createProduct(t, env, admin, widget())

	resp := doJSON(t, env.app, http.MethodGet, "/api/products", employee, nil)
	var list []dto.ProductResponse
	body := decode(t, resp, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, body.Count)
	assert.Equal(t, 1, *body.Count)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	resp = doJSON(t, env.app, http.MethodGet, "/api/products/"+created.ID, employee, nil)
	var got dto.ProductResponse
	decode(t, resp, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Widget", got.Name)

	resp = doJSON(t, env.app, http.MethodGet, "/api/products/no-es-uuid", employee, nil)
	body = decode(t, resp, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid product ID format", body.Message)

	resp = doJSON(t, env.app, http.MethodGet, "/api/products/"+uuid.NewString(), employee, nil)
	body = decode(t, resp, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product not found", body.Message)
}

func TestProducts_ActualizarParcial(t *testing.T) {
	env := newTestEnv(t, 0)
	admin, _ := env.register(t, "root", "admin")
	employee, _ := env.register(t, "ana", "employee")
	created := createProduct(t, env, admin, widget())

	resp := doJSON(t, env.app, http.MethodPut, "/api/products/"+created.ID, employee, jsonBody{"quantity": 5})
	var updated dto.ProductResponse
	body := decode(t, resp, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode, body.Message)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, "Tools", updated.Category)
	assert.True(t, updated.CostPrice.Equal(created.CostPrice))
	assert.True(t, updated.SellingPrice.Equal(created.SellingPrice))

	// Versión obsoleta → 409.
	resp = doJSON(t, env.app, http.MethodPut, "/api/products/"+created.ID, employee,
		jsonBody{"name": "Otro", "version": created.Version})
	body = decode(t, resp, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "VERSION_CONFLICT", body.Code)

	resp = doJSON(t, env.app, http.MethodPut, "/api/products/"+uuid.NewString(), employee, jsonBody{"quantity": 1})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProducts_ActualizarStock(t *testing.T) {
	env := newTestEnv(t, 0)
	admin, _ := env.register(t, "root", "admin")
	employee, _ := env.register(t, "ana", "employee")
	created := createProduct(t, env, admin, widget())
	path := "/api/products/" + created.ID + "/stock"

	for i := 0; i < 2; i++ {
		resp := doJSON(t, env.app, http.MethodPatch, path, employee, jsonBody{"quantity": 12})
		var p dto.ProductResponse
		decode(t, resp, &p)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 12, p.Quantity)
		assert.Equal(t, "In Stock", p.StockStatus)
		assert.Equal(t, "Widget", p.Name)
	}

	for _, bad := range []jsonBody{{}, {"quantity": -1}} {
		resp := doJSON(t, env.app, http.MethodPatch, path, employee, bad)
		body := decode(t, resp, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Please provide a valid quantity", body.Message)
	}

	resp := doJSON(t, env.app, http.MethodPatch, "/api/products/"+uuid.NewString()+"/stock", employee, jsonBody{"quantity": 1})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboard_ResumenYReporte(t *testing.T) {
	env := newTestEnv(t, 0)
	admin, _ := env.register(t, "root", "admin")
	employee, _ := env.register(t, "ana", "employee")
	createProduct(t, env, admin, widget())
	gadget := widget()
	gadget["productId"] = "G-1"
	gadget["quantity"] = 0
	createProduct(t, env, admin, gadget)

	resp := doJSON(t, env.app, http.MethodGet, "/api/dashboard/summary", employee, nil)
	var summary dto.InventorySummaryDTO
	decode(t, resp, &summary)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 1, summary.LowStock)
	assert.Equal(t, 1, summary.OutOfStock)
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(28)))

	resp = doJSON(t, env.app, http.MethodGet, "/api/reports/inventory.pdf", employee, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario-")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestServidor_HealthMetricsY404(t *testing.T) {
	env := newTestEnv(t, 0)

	resp := doJSON(t, env.app, http.MethodGet, "/health", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/no/existe", "", nil)
	body := decode(t, resp, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, body.Success)

	resp = doJSON(t, env.app, http.MethodGet, "/metrics", "", nil)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "shop_http_requests_total")
}
