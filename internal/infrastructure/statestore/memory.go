// Package statestore implementación en memoria del estado persistido de cliente.
// Es el backend por defecto en desarrollo y el que usan los tests.
package statestore

import (
	"context"
	"sync"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/repository"
)

var _ repository.StateStore = (*Memory)(nil)

// Memory StateStore en memoria del proceso.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemory construye el store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string][]byte)}
}

// Get implementa repository.StateStore.
func (m *Memory) Get(_ context.Context, namespace, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[namespace][key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set implementa repository.StateStore.
func (m *Memory) Set(_ context.Context, namespace, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ns, ok := m.data[namespace]
	if !ok {
		ns = make(map[string][]byte)
		m.data[namespace] = ns
	}
	v := make([]byte, len(value))
	copy(v, value)
	ns[key] = v
	return nil
}

// Delete implementa repository.StateStore.
func (m *Memory) Delete(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[namespace], key)
	return nil
}

// Clear implementa repository.StateStore.
func (m *Memory) Clear(_ context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, namespace)
	return nil
}

// Keys claves presentes en un namespace (diagnóstico y tests).
func (m *Memory) Keys(namespace string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data[namespace]))
	for k := range m.data[namespace] {
		keys = append(keys, k)
	}
	return keys
}
