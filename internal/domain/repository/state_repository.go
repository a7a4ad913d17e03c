package repository

import (
	"context"
	"encoding/json"
	"fmt"
)

// StateStore puerto de persistencia para el estado de cliente (token, perfil,
// empresa por defecto, cachés de listados). Cada workspace usa su namespace.
// Get devuelve (nil, nil) si la clave no existe.
type StateStore interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
	Clear(ctx context.Context, namespace string) error
}

// Claves conocidas del estado persistido.
const (
	KeyToken          = "token"
	KeyUser           = "user"
	KeyDefaultCompany = "defaultCompany"
	CachePrefix       = "cache:"
)

// ScopedState StateStore atado a un namespace, con helpers JSON.
type ScopedState struct {
	store     StateStore
	namespace string
}

// NewScopedState construye la vista del namespace.
func NewScopedState(store StateStore, namespace string) *ScopedState {
	return &ScopedState{store: store, namespace: namespace}
}

// Namespace devuelve el namespace.
func (s *ScopedState) Namespace() string { return s.namespace }

// GetString lee una cadena; "" si no existe.
func (s *ScopedState) GetString(ctx context.Context, key string) (string, error) {
	b, err := s.store.Get(ctx, s.namespace, key)
	if err != nil || b == nil {
		return "", err
	}
	return string(b), nil
}

// SetString guarda una cadena.
func (s *ScopedState) SetString(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.namespace, key, []byte(value))
}

// GetJSON decodifica la clave en out. found=false si no existe.
func (s *ScopedState) GetJSON(ctx context.Context, key string, out any) (found bool, err error) {
	b, err := s.store.Get(ctx, s.namespace, key)
	if err != nil || b == nil {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("state %s: %w", key, err)
	}
	return true, nil
}

// SetJSON codifica v y lo guarda.
func (s *ScopedState) SetJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("state %s: %w", key, err)
	}
	return s.store.Set(ctx, s.namespace, key, b)
}

// Delete borra una clave.
func (s *ScopedState) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.namespace, key)
}

// Clear borra todo el namespace.
func (s *ScopedState) Clear(ctx context.Context) error {
	return s.store.Clear(ctx, s.namespace)
}
