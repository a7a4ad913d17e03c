// Package store contiene los Resource Stores: listas en memoria por entidad,
// cargadas desde el backend y compartidas por las vistas de un workspace.
//
// Política de mutaciones: todas esperan la confirmación del servidor antes de
// tocar la lista (wait-then-commit), salvo OrderStore.UpdateOrderStatus que
// aplica el cambio antes y lo revierte si el servidor falla.
//
// Cada Fetch/LoadMore toma un número de secuencia; la respuesta solo se aplica
// si sigue siendo la última emitida. Las cachés persistidas son pistas: Hydrate
// las usa antes del primer Fetch y todo Fetch las sobrescribe.
package store

import (
	"context"
	"sync"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/ports"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/repository"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/logger"
)

// Identifiable entidad con identificador del backend.
type Identifiable interface {
	GetID() string
}

// Gateway operaciones REST de un recurso (restclient.Resource[T] lo implementa).
type Gateway[T any] interface {
	List(ctx context.Context, filters entity.Filters, page, limit int) (*entity.ListPage[T], error)
	Create(ctx context.Context, payload any) (*T, error)
	Update(ctx context.Context, id string, payload any) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Options dependencias opcionales de un Store.
type Options struct {
	Notifier ports.Notifier
	// Cache estado persistido del workspace; nil desactiva la caché.
	Cache     *repository.ScopedState
	MessageOf func(error) string
	Log       *logger.Logger
}

// View copia del estado de un Store para la UI.
type View[T any] struct {
	Items        []T               `json:"items"`
	Pagination   entity.Pagination `json:"pagination"`
	Loading      bool              `json:"loading"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
}

// Store lista en memoria de un recurso.
type Store[T Identifiable] struct {
	mu           sync.Mutex
	items        []T
	pagination   entity.Pagination
	loading      bool
	errorMessage string
	seq          uint64
	filters      entity.Filters
	limit        int

	name      string
	gw        Gateway[T]
	notifier  ports.Notifier
	cache     *repository.ScopedState
	messageOf func(error) string
	log       *logger.Logger
}

// New construye un Store. name identifica la caché persistida (cache:<name>).
func New[T Identifiable](name string, gw Gateway[T], opts Options) *Store[T] {
	s := &Store[T]{
		name:      name,
		gw:        gw,
		notifier:  opts.Notifier,
		cache:     opts.Cache,
		messageOf: opts.MessageOf,
		log:       opts.Log,
	}
	if s.notifier == nil {
		s.notifier = ports.NopNotifier{}
	}
	if s.messageOf == nil {
		s.messageOf = func(err error) string { return err.Error() }
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	s.log = s.log.Component("store." + name)
	return s
}

// Name nombre del recurso.
func (s *Store[T]) Name() string { return s.name }

func (s *Store[T]) cacheKey() string { return repository.CachePrefix + s.name }

// Hydrate carga la caché persistida si la lista aún está vacía.
func (s *Store[T]) Hydrate(ctx context.Context) bool {
	if s.cache == nil {
		return false
	}
	var cached []T
	found, err := s.cache.GetJSON(ctx, s.cacheKey(), &cached)
	if err != nil {
		s.log.Debug().Err(err).Msg("caché ilegible; se ignora")
		return false
	}
	if !found {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) > 0 || s.seq > 0 {
		return false
	}
	s.items = cached
	return true
}

// Fetch reemplaza la lista con la página pedida. Si mientras tanto se emitió
// otro Fetch, la respuesta se descarta y retorna nil.
func (s *Store[T]) Fetch(ctx context.Context, filters entity.Filters, page, limit int) error {
	s.mu.Lock()
	s.seq++
	my := s.seq
	s.loading = true
	s.errorMessage = ""
	s.filters = filters
	s.limit = limit
	s.mu.Unlock()

	res, err := s.gw.List(ctx, filters, page, limit)
	return s.apply(ctx, my, res, err, false)
}

// LoadMore agrega la página siguiente. Rechaza si hay una carga en curso o si
// no quedan páginas.
func (s *Store[T]) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return domain.ErrLoading
	}
	if !s.pagination.HasMore() {
		s.mu.Unlock()
		return domain.ErrNoMorePages
	}
	s.seq++
	my := s.seq
	s.loading = true
	s.errorMessage = ""
	filters, limit, next := s.filters, s.limit, s.pagination.Page+1
	s.mu.Unlock()

	res, err := s.gw.List(ctx, filters, next, limit)
	return s.apply(ctx, my, res, err, true)
}

func (s *Store[T]) apply(ctx context.Context, my uint64, res *entity.ListPage[T], err error, appendPage bool) error {
	s.mu.Lock()
	if my != s.seq {
		s.mu.Unlock()
		s.log.Debug().Uint64("seq", my).Msg("respuesta obsoleta descartada")
		return nil
	}
	s.loading = false
	if err != nil {
		msg := s.messageOf(err)
		s.errorMessage = msg
		s.mu.Unlock()
		s.notifier.Error(msg)
		s.log.Warn().Err(err).Msg("listado falló")
		return err
	}
	if appendPage {
		s.items = append(s.items, res.Data...)
	} else {
		s.items = append([]T(nil), res.Data...)
	}
	s.pagination = res.Pagination
	snapshot := append([]T(nil), s.items...)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return nil
}

func (s *Store[T]) persist(ctx context.Context, items []T) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(context.WithoutCancel(ctx), s.cacheKey(), items); err != nil {
		s.log.Debug().Err(err).Msg("no se pudo persistir la caché")
	}
}

func (s *Store[T]) fail(err error) error {
	msg := s.messageOf(err)
	s.mu.Lock()
	s.errorMessage = msg
	s.mu.Unlock()
	s.notifier.Error(msg)
	return err
}

// Add crea en el backend y, confirmado, agrega el elemento al inicio de la lista.
func (s *Store[T]) Add(ctx context.Context, payload any) (*T, error) {
	created, err := s.gw.Create(ctx, payload)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	s.items = append([]T{*created}, s.items...)
	s.pagination.Total++
	s.mu.Unlock()
	s.notifier.Success("Created successfully")
	return created, nil
}

// Update actualiza en el backend y reemplaza el elemento con el mismo id.
func (s *Store[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	updated, err := s.gw.Update(ctx, id, payload)
	if err != nil {
		return nil, s.fail(err)
	}
	s.replace(id, *updated)
	s.notifier.Success("Updated successfully")
	return updated, nil
}

// Delete borra en el backend y, confirmado, quita el elemento de la lista.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if err := s.gw.Delete(ctx, id); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].GetID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			if s.pagination.Total > 0 {
				s.pagination.Total--
			}
			break
		}
	}
	s.mu.Unlock()
	s.notifier.Success("Deleted successfully")
	return nil
}

// replace sustituye el elemento con ese id y devuelve el anterior.
func (s *Store[T]) replace(id string, item T) (prev T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].GetID() == id {
			prev = s.items[i]
			s.items[i] = item
			return prev, true
		}
	}
	return prev, false
}

// find devuelve el elemento con ese id.
func (s *Store[T]) find(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Snapshot copia del estado.
func (s *Store[T]) Snapshot() View[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View[T]{
		Items:        append([]T{}, s.items...),
		Pagination:   s.pagination,
		Loading:      s.loading,
		ErrorMessage: s.errorMessage,
	}
}

// Clear vacía el store e invalida las cargas en vuelo.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.pagination = entity.Pagination{}
	s.loading = false
	s.errorMessage = ""
	s.filters = nil
	s.limit = 0
	s.seq++
}
