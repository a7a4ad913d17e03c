// Package workspace contexto de aplicación por login: agrupa la sesión, el
// cliente del backend, los Resource Stores, los editores abiertos y el
// dashboard de un usuario. Reemplaza a los singletons globales: cada test o
// cada login obtiene su propia instancia.
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/analytics"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/pricelist"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/session"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/store"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/repository"
	pl "github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/pricelist"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/logger"
)

// API operaciones del backend que usa un workspace.
type API interface {
	session.Authenticator
	pricelist.Gateway
	analytics.Source
	store.OrderStatusUpdater
	StockGroups(ctx context.Context, companyID, search string) ([]entity.StockGroup, error)
	PriceLists(ctx context.Context, companyID string) ([]entity.PriceList, error)
	Companies(ctx context.Context) ([]entity.Company, error)
}

// Backend acceso al backend ligado a la sesión de un workspace.
type Backend struct {
	API       API
	Customers store.Gateway[entity.Customer]
	Orders    store.Gateway[entity.Order]
	// MessageOf traduce errores de transporte a mensajes para la UI.
	MessageOf func(error) string
}

// BackendFactory crea el acceso al backend de un workspace; la sesión actúa
// como fuente del token y como destino de los 401.
type BackendFactory func(sess *session.Store) Backend

// Config ajustes comunes a todos los workspaces.
type Config struct {
	PageSize       int
	RedirectDelay  time.Duration
	SearchDebounce time.Duration
	ListLimit      int
}

// Workspace estado de aplicación de un login.
type Workspace struct {
	ID        string
	CreatedAt time.Time

	Session   *session.Store
	API       API
	Customers *store.Store[entity.Customer]
	Orders    *store.OrderStore
	Dashboard *analytics.DashboardUseCase
	Inbox     *Inbox
	State     *repository.ScopedState

	mu            sync.Mutex
	editors       map[string]*pricelist.Editor
	search        *store.Searcher[entity.Customer]
	searchCompany string
	lastSeen      time.Time

	messageOf func(error) string
	cfg       Config
	log       *logger.Logger
}

func newWorkspace(id string, state repository.StateStore, factory BackendFactory, cfg Config, log *logger.Logger) *Workspace {
	now := time.Now()
	inbox := NewInbox()
	scoped := repository.NewScopedState(state, id)
	log = log.WithStr("workspace_id", id)

	sess := session.New(scoped, inbox, log)
	be := factory(sess)
	if be.MessageOf == nil {
		be.MessageOf = func(err error) string { return err.Error() }
	}
	sess.SetMessageFunc(be.MessageOf)
	sess.SetAuthenticator(be.API)

	opts := store.Options{Notifier: inbox, Cache: scoped, MessageOf: be.MessageOf, Log: log}
	w := &Workspace{
		ID:        id,
		CreatedAt: now,
		Session:   sess,
		API:       be.API,
		Customers: store.New[entity.Customer]("customers", be.Customers, opts),
		Orders:    store.NewOrderStore(be.Orders, be.API, opts),
		Dashboard: analytics.NewDashboardUseCase(be.API, log),
		Inbox:     inbox,
		State:     scoped,
		editors:   make(map[string]*pricelist.Editor),
		lastSeen:  now,
		messageOf: be.MessageOf,
		cfg:       cfg,
		log:       log,
	}
	sess.Register(w.Customers, w.Orders, w)
	return w
}

// Touch marca actividad reciente.
func (w *Workspace) Touch() {
	w.mu.Lock()
	w.lastSeen = time.Now()
	w.mu.Unlock()
}

// LastSeen última actividad.
func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// Hydrate rellena los stores con las cachés persistidas antes del primer Fetch.
func (w *Workspace) Hydrate(ctx context.Context) {
	w.Customers.Hydrate(ctx)
	w.Orders.Hydrate(ctx)
}

// Message texto apto para la UI de un error del backend.
func (w *Workspace) Message(err error) string { return w.messageOf(err) }

// CompanyID empresa activa de la sesión.
func (w *Workspace) CompanyID() string { return w.Session.CompanyID() }

// OpenEditor crea y carga un editor. Si la carga falla el editor se descarta.
func (w *Workspace) OpenEditor(ctx context.Context, p pricelist.Params) (*pricelist.Editor, error) {
	if p.Header.CompanyID == "" {
		p.Header.CompanyID = w.CompanyID()
	}
	ed, err := pricelist.New(uuid.NewString(), p, w.API, pricelist.Config{
		PageSize:      w.cfg.PageSize,
		RedirectDelay: w.cfg.RedirectDelay,
		IDs:           pl.UUIDGenerator{},
		Notifier:      w.Inbox,
		Log:           w.log,
	})
	if err != nil {
		return nil, err
	}
	if err := ed.Load(ctx); err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.editors[ed.ID()] = ed
	w.mu.Unlock()
	return ed, nil
}

// Editor busca un editor abierto.
func (w *Workspace) Editor(id string) (*pricelist.Editor, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ed, ok := w.editors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ed, nil
}

// CloseEditor descarta un editor.
func (w *Workspace) CloseEditor(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.editors[id]
	delete(w.editors, id)
	return ok
}

// Editors cantidad de editores abiertos.
func (w *Workspace) Editors() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.editors)
}

// SearchCustomers programa una búsqueda con debounce sobre el store de clientes.
// El buscador se recrea si cambia la empresa activa.
func (w *Workspace) SearchCustomers(term string, done func(error)) {
	company := w.CompanyID()
	w.mu.Lock()
	if w.search == nil || w.searchCompany != company {
		if w.search != nil {
			w.search.Close()
		}
		w.search = store.NewSearcher(w.Customers, entity.Filters{"companyId": company}, w.cfg.ListLimit, w.cfg.SearchDebounce)
		w.searchCompany = company
	}
	s := w.search
	w.mu.Unlock()
	s.Search(term, done)
}

// Clear cierra editores y búsquedas pendientes (se ejecuta en Logout).
func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.editors = make(map[string]*pricelist.Editor)
	if w.search != nil {
		w.search.Close()
		w.search = nil
	}
}
