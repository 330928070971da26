package http_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/shop-inventory/internal/application/analytics"
	"github.com/jhoicas/shop-inventory/internal/application/auth"
	"github.com/jhoicas/shop-inventory/internal/application/dto"
	"github.com/jhoicas/shop-inventory/internal/application/usecase"
	"github.com/jhoicas/shop-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/shop-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/shop-inventory/internal/infrastructure/ratelimit"
	apphttp "github.com/jhoicas/shop-inventory/internal/interfaces/http"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "shop-inventory-test"
)

// testEnv aplicación completa sobre repositorios en memoria.
type testEnv struct {
	app      *fiber.App
	users    *memory.UserRepo
	products *memory.ProductRepo
	authUC   *auth.AuthUseCase
}

func newTestEnv(t *testing.T, rateLimit int) *testEnv {
	t.Helper()
	users := memory.NewUserRepository()
	products := memory.NewProductRepository()

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret: testJWTSecret,
		TTL:    30 * 24 * time.Hour,
		Issuer: testIssuer,
	}, bcrypt.MinCost, nil)

	app := apphttp.NewApp("shop-inventory-test")
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(users),
		ProductUC:   usecase.NewProductUseCase(products, nil),
		DashboardUC: appanalytics.NewDashboardUseCase(products),
		ReportUC:    appanalytics.NewReportUseCase(products, pdf.NewMarotoPDFGenerator(), "Tienda Test"),
		JWTSecret:   testJWTSecret,
		RateStore:   ratelimit.NewMemoryStore(),
		RateLimit:   rateLimit,
		RateWindow:  time.Minute,
		ServiceName: "shop-inventory-test",
	})
	return &testEnv{app: app, users: users, products: products, authUC: authUC}
}

// register crea un usuario vía caso de uso y devuelve el header Authorization.
func (e *testEnv) register(t *testing.T, username, role string) (string, *dto.AuthResponse) {
	t.Helper()
	res, err := e.authUC.Register(context.Background(), dto.RegisterRequest{
		Username: username,
		Email:    username + "@shop.com",
		Password: "secret1",
		Role:     role,
	})
	require.NoError(t, err)
	return "Bearer " + res.Token, res
}

// jsonBody cuerpo JSON ad hoc para las peticiones de test.
type jsonBody = map[string]interface{}

func doRaw(t *testing.T, app *fiber.App, method, path, authHeader string, body io.Reader) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doJSON(t *testing.T, app *fiber.App, method, path, authHeader string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	return doRaw(t, app, method, path, authHeader, r)
}

// envelope decodifica la respuesta; data queda como json.RawMessage para decodificar al tipo esperado.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Count   *int              `json:"count"`
	Fields  map[string]string `json:"fields"`
}

func decode(t *testing.T, resp *http.Response, data interface{}) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}
