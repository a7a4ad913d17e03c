// Package restclient es la capa de acceso HTTP al backend REST: adjunta el
// Bearer token y el header auth-source a cada petición y centraliza el
// manejo de 401.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/logger"
)

const (
	headerAuthSource = "auth-source"
	maxBodyBytes     = 4 << 20

	// concurrentSessionMarker texto con el que el backend indica que la cuenta se abrió en otro dispositivo.
	concurrentSessionMarker = "another device"
	genericErrorMessage     = "Something went wrong. Please try again."
)

// TokenSource entrega el token de sesión vigente (persistido por la sesión).
type TokenSource interface {
	Token() string
}

// SessionGuard recibe las decisiones del manejo centralizado de 401.
type SessionGuard interface {
	SetNewDeviceLogin(active bool)
	ForceLogout(ctx context.Context)
}

// APIError respuesta no-2xx del backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend HTTP %d: %s", e.Status, e.Message)
}

// HTTPStatus status devuelto por el backend.
func (e *APIError) HTTPStatus() int { return e.Status }

// IsConcurrentSession el 401 corresponde a una sesión abierta en otro dispositivo.
func (e *APIError) IsConcurrentSession() bool {
	return e.Status == http.StatusUnauthorized &&
		strings.Contains(strings.ToLower(e.Message), concurrentSessionMarker)
}

// StatusOf devuelve el status HTTP de un *APIError envuelto, 0 si no lo es.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf mensaje apto para mostrar: el del backend si existe, si no uno genérico.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericErrorMessage
}

// Config parámetros del cliente.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	AuthSource string
}

// Client cliente REST tipado. Un Client por workspace: el token y el guard son los de esa sesión.
type Client struct {
	baseURL    string
	authSource string
	httpClient *http.Client
	tokens     TokenSource
	guard      SessionGuard
	log        *logger.Logger
}

// New construye el cliente. guard puede asignarse luego con SetSessionGuard
// (la sesión necesita el cliente y el cliente la sesión).
func New(cfg Config, tokens TokenSource, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	authSource := cfg.AuthSource
	if authSource == "" {
		authSource = "api"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		authSource: authSource,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log.Component("restclient"),
	}
}

// SetSessionGuard registra quién atiende los 401.
func (c *Client) SetSessionGuard(g SessionGuard) { c.guard = g }

// Do ejecuta una petición JSON. body y out pueden ser nil. Nunca reintenta;
// los errores se devuelven al llamador.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("restclient: serializar body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("restclient: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerAuthSource, c.authSource)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("restclient: %s %s cancelado: %w", method, path, ctx.Err())
		}
		return fmt.Errorf("restclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("restclient: leer respuesta: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: extractMessage(raw)}
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized(ctx, apiErr)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("restclient: deserializar %s %s: %w", method, path, err)
	}
	return nil
}

// handleUnauthorized sesión en otro dispositivo: se levanta la bandera y la UI
// pide confirmación; cualquier otro 401 cierra sesión de inmediato.
func (c *Client) handleUnauthorized(ctx context.Context, apiErr *APIError) {
	if c.guard == nil {
		return
	}
	if apiErr.IsConcurrentSession() {
		c.log.Warn().Msg("sesión abierta en otro dispositivo")
		c.guard.SetNewDeviceLogin(true)
		return
	}
	c.log.Info().Str("message", apiErr.Message).Msg("401 del backend, cerrando sesión")
	c.guard.ForceLogout(context.WithoutCancel(ctx))
}

// extractMessage toma message o error del cuerpo JSON; vacío si no hay.
func extractMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	if s, ok := body.Error.(string); ok {
		return s
	}
	return ""
}
