package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/session"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/repository"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/logger"
)

// Registry workspaces vivos del proceso, indexados por id. Un workspace que no
// está en memoria (reinicio, barrido por inactividad) se reconstruye desde el
// estado persistido si aún tiene token.
type Registry struct {
	mu      sync.RWMutex
	items   map[string]*Workspace
	state   repository.StateStore
	factory BackendFactory
	cfg     Config
	log     *logger.Logger
}

// NewRegistry construye el registro.
func NewRegistry(state repository.StateStore, factory BackendFactory, cfg Config, log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		items:   make(map[string]*Workspace),
		state:   state,
		factory: factory,
		cfg:     cfg,
		log:     log,
	}
}

// Open crea un workspace nuevo (anónimo) y lo registra.
func (r *Registry) Open() *Workspace {
	id := uuid.NewString()
	w := newWorkspace(id, r.state, r.factory, r.cfg, r.log)
	r.mu.Lock()
	r.items[id] = w
	r.mu.Unlock()
	return w
}

// Get devuelve el workspace. Si no está en memoria intenta restaurarlo;
// sin sesión persistida retorna domain.ErrSessionClosed.
func (r *Registry) Get(ctx context.Context, id string) (*Workspace, error) {
	r.mu.RLock()
	w, ok := r.items[id]
	r.mu.RUnlock()
	if ok {
		w.Touch()
		return w, nil
	}

	restored := newWorkspace(id, r.state, r.factory, r.cfg, r.log)
	if err := restored.Session.Restore(ctx); err != nil {
		return nil, err
	}
	if restored.Session.Snapshot().State != session.StateAuthenticated {
		return nil, domain.ErrSessionClosed
	}
	restored.Hydrate(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[id]; ok {
		return existing, nil
	}
	r.items[id] = restored
	r.log.Info().Str("workspace_id", id).Msg("workspace restaurado desde estado persistido")
	return restored, nil
}

// Remove quita el workspace de memoria (no toca el estado persistido).
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.items[id]; ok {
		w.Clear()
		delete(r.items, id)
	}
}

// Len workspaces en memoria.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Sweep descarta de memoria los workspaces sin actividad en idle. Los editores
// abiertos se pierden; la sesión se restaura en el siguiente Get.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, w := range r.items {
		if w.LastSeen().Before(cutoff) {
			w.Clear()
			delete(r.items, id)
			n++
		}
	}
	if n > 0 {
		r.log.Debug().Int("removed", n).Msg("workspaces inactivos descartados")
	}
	return n
}

// RunSweeper barre periódicamente hasta que ctx termine.
func (r *Registry) RunSweeper(ctx context.Context, every, idle time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep(idle)
		}
	}
}
