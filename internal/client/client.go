package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
)

// FallbackMessage se muestra cuando no hubo respuesta utilizable del servidor.
const FallbackMessage = "Unable to reach the server"

// ErrUnreachable error de transporte (sin conexión, timeout, respuesta ilegible).
var ErrUnreachable = errors.New(FallbackMessage)

const maxResponseBytes = 16 << 20

// APIError respuesta fallida de la API; Message es el texto enviado por el servidor.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized indica token ausente, inválido o expirado.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client cliente HTTP de la API de inventario.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New construye el cliente. baseURL sin barra final, p. ej. http://localhost:8080.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken fija el JWT enviado en Authorization.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register crea una cuenta y devuelve usuario y token.
func (c *Client) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login autentica y devuelve usuario y token.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me devuelve el usuario dueño del token actual.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProducts todos los productos, más recientes primero.
func (c *Client) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	var out []dto.ProductResponse
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.do(ctx, http.MethodPost, "/api/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStock fija la cantidad disponible de un producto.
func (c *Client) UpdateStock(ctx context.Context, id string, quantity int) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	in := dto.UpdateStockRequest{Quantity: &quantity}
	if err := c.do(ctx, http.MethodPatch, "/api/products/"+url.PathEscape(id)+"/stock", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summary agregados del dashboard.
func (c *Client) Summary(ctx context.Context) (*dto.InventorySummaryDTO, error) {
	var out dto.InventorySummaryDTO
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InventoryReport descarga el reporte PDF.
func (c *Client) InventoryReport(ctx context.Context) ([]byte, error) {
	status, raw, err := c.send(ctx, http.MethodGet, "/api/reports/inventory.pdf", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, decodeFailure(status, raw)
	}
	return raw, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	status, raw, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	if status >= http.StatusBadRequest {
		return decodeFailure(status, raw)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ErrUnreachable
	}
	if !env.Success {
		return &APIError{Status: status, Code: env.Code, Message: messageOr(env.Message)}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decodificar respuesta %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, in interface{}) (int, []byte, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("serializar request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("crear request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		return 0, nil, ErrUnreachable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, ErrUnreachable
	}
	return resp.StatusCode, raw, nil
}

func decodeFailure(status int, raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Status: status, Message: FallbackMessage}
	}
	return &APIError{Status: status, Code: env.Code, Message: messageOr(env.Message)}
}

func messageOr(msg string) string {
	if msg == "" {
		return FallbackMessage
	}
	return msg
}
