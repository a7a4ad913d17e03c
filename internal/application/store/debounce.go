package store

import (
	"context"
	"sync"
	"time"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

// DefaultDebounce retardo por defecto de la búsqueda.
const DefaultDebounce = 400 * time.Millisecond

// Debouncer ejecuta la última función recibida tras un periodo sin llamadas.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	closed bool
}

// NewDebouncer construye el debouncer; delay <= 0 usa DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger reinicia el temporizador con fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancela lo pendiente y descarta llamadas futuras.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Searcher búsqueda con debounce sobre un Store: cada término reinicia el
// temporizador y solo el último dispara Fetch (página 1).
type Searcher[T Identifiable] struct {
	store   *Store[T]
	deb     *Debouncer
	base    entity.Filters
	limit   int
	timeout time.Duration
}

// NewSearcher construye el buscador. base son filtros fijos (ej. companyId).
func NewSearcher[T Identifiable](s *Store[T], base entity.Filters, limit int, delay time.Duration) *Searcher[T] {
	return &Searcher[T]{store: s, deb: NewDebouncer(delay), base: base, limit: limit, timeout: 30 * time.Second}
}

// Search programa la búsqueda de term. done, si no es nil, recibe el resultado.
func (s *Searcher[T]) Search(term string, done func(error)) {
	filters := entity.Filters{}
	for k, v := range s.base {
		filters[k] = v
	}
	filters["search"] = term
	s.deb.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		err := s.store.Fetch(ctx, filters, 1, s.limit)
		if done != nil {
			done(err)
		}
	})
}

// Close cancela la búsqueda pendiente.
func (s *Searcher[T]) Close() { s.deb.Stop() }
