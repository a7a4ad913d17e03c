package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/store"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/repository"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/infrastructure/statestore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type listCall struct {
	filters entity.Filters
	page    int
	// release entrega la respuesta de esta llamada.
	release chan listResult
}

type listResult struct {
	page *entity.ListPage[entity.Customer]
	err  error
}

// stubCustomers gateway controlable: cada List se publica en calls y espera su respuesta.
type stubCustomers struct {
	calls     chan listCall
	createErr error
	deleteErr error
}

func newStubCustomers() *stubCustomers {
	return &stubCustomers{calls: make(chan listCall, 10)}
}

func (g *stubCustomers) List(_ context.Context, f entity.Filters, page, _ int) (*entity.ListPage[entity.Customer], error) {
	call := listCall{filters: f, page: page, release: make(chan listResult, 1)}
	g.calls <- call
	r := <-call.release
	return r.page, r.err
}

func (g *stubCustomers) Create(_ context.Context, payload any) (*entity.Customer, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	c := payload.(entity.Customer)
	c.ID = "new-id"
	return &c, nil
}

func (g *stubCustomers) Update(_ context.Context, id string, payload any) (*entity.Customer, error) {
	c := payload.(entity.Customer)
	c.ID = id
	return &c, nil
}

func (g *stubCustomers) Delete(context.Context, string) error { return g.deleteErr }

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, m)
}

func (n *recordingNotifier) Error(m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, m)
}

func customers(names ...string) []entity.Customer {
	out := make([]entity.Customer, 0, len(names))
	for _, n := range names {
		out = append(out, entity.Customer{ID: n, Name: n})
	}
	return out
}

func pageOf(page, totalPages int, names ...string) listResult {
	return listResult{page: &entity.ListPage[entity.Customer]{
		Data:       customers(names...),
		Pagination: entity.Pagination{Page: page, Limit: 10, Total: totalPages * 10, TotalPages: totalPages},
	}}
}

// fetchAsync lanza Fetch y devuelve la llamada recibida por el gateway y el canal del resultado.
func fetchAsync(t *testing.T, s *store.Store[entity.Customer], gw *stubCustomers, f entity.Filters) (listCall, chan error) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- s.Fetch(context.Background(), f, 1, 10) }()
	select {
	case call := <-gw.calls:
		return call, done
	case <-time.After(2 * time.Second):
		t.Fatal("el gateway no recibió la llamada")
		return listCall{}, nil
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fetch: la última emitida gana
// ──────────────────────────────────────────────────────────────────────────────

func TestFetch_RespuestaObsoletaSeDescarta(t *testing.T) {
	gw := newStubCustomers()
	s := store.New[entity.Customer]("customers", gw, store.Options{})

	first, firstDone := fetchAsync(t, s, gw, entity.Filters{"search": "a"})
	second, secondDone := fetchAsync(t, s, gw, entity.Filters{"search": "ab"})

	second.release <- pageOf(1, 1, "ab-1")
	require.NoError(t, <-secondDone)

	first.release <- pageOf(1, 1, "a-1", "a-2")
	require.NoError(t, <-firstDone)

	v := s.Snapshot()
	require.Len(t, v.Items, 1)
	assert.Equal(t, "ab-1", v.Items[0].ID)
	assert.False(t, v.Loading)
}

func TestFetch_ErrorGuardaMensajeYNotifica(t *testing.T) {
	gw := newStubCustomers()
	n := &recordingNotifier{}
	s := store.New[entity.Customer]("customers", gw, store.Options{Notifier: n})

	call, done := fetchAsync(t, s, gw, nil)
	call.release <- listResult{err: errors.New("boom")}

	assert.EqualError(t, <-done, "boom")
	v := s.Snapshot()
	assert.Equal(t, "boom", v.ErrorMessage)
	assert.False(t, v.Loading)
	assert.Equal(t, []string{"boom"}, n.errors)
}

// ──────────────────────────────────────────────────────────────────────────────
// LoadMore
// ──────────────────────────────────────────────────────────────────────────────

func TestLoadMore_AgregaPaginaSiguiente(t *testing.T) {
	gw := newStubCustomers()
	s := store.New[entity.Customer]("customers", gw, store.Options{})

	call, done := fetchAsync(t, s, gw, entity.Filters{"companyId": "C1"})
	call.release <- pageOf(1, 2, "c1", "c2")
	require.NoError(t, <-done)

	more := make(chan error, 1)
	go func() { more <- s.LoadMore(context.Background()) }()
	next := <-gw.calls
	assert.Equal(t, 2, next.page)
	assert.Equal(t, "C1", next.filters["companyId"])

	assert.ErrorIs(t, s.LoadMore(context.Background()), domain.ErrLoading, "no se permite otra carga en vuelo")

	next.release <- pageOf(2, 2, "c3")
	require.NoError(t, <-more)

	assert.Len(t, s.Snapshot().Items, 3)
	assert.ErrorIs(t, s.LoadMore(context.Background()), domain.ErrNoMorePages)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones (wait-then-commit)
// ──────────────────────────────────────────────────────────────────────────────

func TestMutaciones_EsperanConfirmacion(t *testing.T) {
	ctx := context.Background()
	gw := newStubCustomers()
	n := &recordingNotifier{}
	s := store.New[entity.Customer]("customers", gw, store.Options{Notifier: n})

	call, done := fetchAsync(t, s, gw, nil)
	call.release <- pageOf(1, 1, "c1", "c2")
	require.NoError(t, <-done)

	created, err := s.Add(ctx, entity.Customer{Name: "Nuevo"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)
	assert.Equal(t, "new-id", s.Snapshot().Items[0].ID)

	_, err = s.Update(ctx, "c1", entity.Customer{Name: "Renombrado"})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", s.Snapshot().Items[1].Name)

	gw.deleteErr = errors.New("no se puede borrar")
	require.Error(t, s.Delete(ctx, "c2"))
	assert.Len(t, s.Snapshot().Items, 3, "sin confirmación no se quita")

	gw.deleteErr = nil
	require.NoError(t, s.Delete(ctx, "c2"))
	assert.Len(t, s.Snapshot().Items, 2)

	gw.createErr = errors.New("duplicado")
	_, err = s.Add(ctx, entity.Customer{Name: "Otro"})
	require.Error(t, err)
	assert.Len(t, s.Snapshot().Items, 2)
	assert.Equal(t, []string{"no se puede borrar", "duplicado"}, n.errors)
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché persistida y Clear
// ──────────────────────────────────────────────────────────────────────────────

func TestHydrate_CacheEsSoloPista(t *testing.T) {
	ctx := context.Background()
	cache := repository.NewScopedState(statestore.NewMemory(), "ws")
	require.NoError(t, cache.SetJSON(ctx, repository.CachePrefix+"customers", customers("viejo")))

	gw := newStubCustomers()
	s := store.New[entity.Customer]("customers", gw, store.Options{Cache: cache})
	require.True(t, s.Hydrate(ctx))
	assert.Equal(t, "viejo", s.Snapshot().Items[0].ID)

	call, done := fetchAsync(t, s, gw, nil)
	call.release <- pageOf(1, 1, "fresco")
	require.NoError(t, <-done)
	assert.Equal(t, "fresco", s.Snapshot().Items[0].ID)

	var persisted []entity.Customer
	_, err := cache.GetJSON(ctx, repository.CachePrefix+"customers", &persisted)
	require.NoError(t, err)
	assert.Equal(t, "fresco", persisted[0].ID)
}

func TestClear_InvalidaCargaEnVuelo(t *testing.T) {
	gw := newStubCustomers()
	s := store.New[entity.Customer]("customers", gw, store.Options{})

	call, done := fetchAsync(t, s, gw, nil)
	s.Clear()
	call.release <- pageOf(1, 1, "tarde")
	require.NoError(t, <-done)

	assert.Empty(t, s.Snapshot().Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Debounce
// ──────────────────────────────────────────────────────────────────────────────

func TestDebouncer_SoloUltimaLlamada(t *testing.T) {
	d := store.NewDebouncer(20 * time.Millisecond)
	var got atomic.Int32
	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Trigger(func() { got.Store(v) })
	}
	assert.Eventually(t, func() bool { return got.Load() == 5 }, time.Second, 5*time.Millisecond)

	d.Stop()
	d.Trigger(func() { got.Store(99) })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(5), got.Load())
}

func TestSearcher_DisparaUnSoloFetch(t *testing.T) {
	gw := newStubCustomers()
	s := store.New[entity.Customer]("customers", gw, store.Options{})
	searcher := store.NewSearcher(s, entity.Filters{"companyId": "C1"}, 10, 20*time.Millisecond)
	defer searcher.Close()

	result := make(chan error, 1)
	searcher.Search("a", nil)
	searcher.Search("ac", nil)
	searcher.Search("acm", func(err error) { result <- err })

	call := <-gw.calls
	assert.Equal(t, "acm", call.filters["search"])
	assert.Equal(t, "C1", call.filters["companyId"])
	assert.Equal(t, 1, call.page)
	call.release <- pageOf(1, 1, "acme")
	require.NoError(t, <-result)

	select {
	case extra := <-gw.calls:
		t.Fatalf("fetch inesperado: %v", extra.filters)
	case <-time.After(50 * time.Millisecond):
	}
}
