// Package pricelist caso de uso del editor de listas de precios por tramos:
// carga (por grupo de stock o desde una lista guardada), edición de celdas,
// paginación y guardado página por página.
package pricelist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/ports"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	pl "github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/pricelist"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/logger"
)

const (
	// DefaultPageSize artículos por página en modo creación.
	DefaultPageSize = 40
	// DefaultRedirectDelay espera antes de volver al listado tras guardar.
	DefaultRedirectDelay = 1500 * time.Millisecond
	// ListRoute destino de la navegación tras guardar.
	ListRoute = "/price-lists"

	loadFailedMessage = "Failed to load items"
	saveFailedMessage = "Failed to save price list"
	savedMessage      = "Price list saved successfully"
)

// Mode modo del editor, fijo durante toda su vida.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeView   Mode = "view"
)

// ParseMode valida el modo recibido de la UI.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeCreate, ModeEdit, ModeView:
		return Mode(s), true
	}
	return "", false
}

// Gateway operaciones del backend que usa el editor (restclient.Client las implementa).
type Gateway interface {
	GroupProducts(ctx context.Context, companyID, groupID string, page, limit int) (*entity.StockItemPage, error)
	PriceList(ctx context.Context, id string) (*entity.PriceList, error)
	CreatePriceListPage(ctx context.Context, payload pl.PagePayload) (*entity.PriceList, error)
	UpdatePriceList(ctx context.Context, id string, payload pl.PagePayload) (*entity.PriceList, error)
}

// Params parámetros de apertura (los que la UI recibe por navegación).
type Params struct {
	Mode        Mode      `json:"mode"`
	Header      pl.Header `json:"header"`
	PriceListID string    `json:"priceListId,omitempty"`
}

// Config dependencias y ajustes del editor.
type Config struct {
	PageSize      int
	RedirectDelay time.Duration
	IDs           pl.IDGenerator
	Notifier      ports.Notifier
	Log           *logger.Logger
}

// SaveResult resultado de un guardado exitoso.
type SaveResult struct {
	PriceList       *entity.PriceList `json:"priceList,omitempty"`
	Page            int               `json:"page"`
	SavedItems      int               `json:"savedItems"`
	SavedSlabs      int               `json:"savedSlabs"`
	RedirectTo      string            `json:"redirectTo"`
	RedirectAfter   time.Duration     `json:"-"`
	RedirectAfterMs int64             `json:"redirectAfterMs"`
}

// View estado del editor para la UI.
type View struct {
	ID          string          `json:"id"`
	Mode        Mode            `json:"mode"`
	Header      pl.Header       `json:"header"`
	PriceListID string          `json:"priceListId,omitempty"`
	Page        int             `json:"page"`
	HasMore     bool            `json:"hasMore"`
	Total       int             `json:"total"`
	CanNext     bool            `json:"canNext"`
	CanPrev     bool            `json:"canPrev"`
	Paginated   bool            `json:"paginated"`
	Loading     bool            `json:"loading"`
	ReadOnly    bool            `json:"readOnly"`
	Rows        []pl.DisplayRow `json:"rows"`
	Gaps        []pl.Gap        `json:"gaps,omitempty"`
	SavedPages  []int           `json:"savedPages,omitempty"`
}

// Editor sesión de edición de una lista de precios. El mutex protege la
// grilla y nunca se mantiene durante llamadas de red.
type Editor struct {
	mu          sync.Mutex
	id          string
	mode        Mode
	header      pl.Header
	priceListID string
	grid        *pl.Grid
	page        int
	hasMore     bool
	total       int
	loading     bool
	savedPages  map[int]bool

	gw            Gateway
	pageSize      int
	redirectDelay time.Duration
	notifier      ports.Notifier
	log           zerolog.Logger
}

// New construye el editor. edit y view requieren PriceListID; create requiere empresa.
func New(id string, p Params, gw Gateway, cfg Config) (*Editor, error) {
	if _, ok := ParseMode(string(p.Mode)); !ok {
		return nil, fmt.Errorf("modo %q: %w", p.Mode, domain.ErrInvalidInput)
	}
	if p.Mode == ModeCreate && p.Header.CompanyID == "" {
		return nil, fmt.Errorf("companyId requerido: %w", domain.ErrInvalidInput)
	}
	if p.Mode != ModeCreate && p.PriceListID == "" {
		return nil, fmt.Errorf("priceListId requerido en modo %s: %w", p.Mode, domain.ErrInvalidInput)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	if cfg.Notifier == nil {
		cfg.Notifier = ports.NopNotifier{}
	}
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	return &Editor{
		id:            id,
		mode:          p.Mode,
		header:        p.Header,
		priceListID:   p.PriceListID,
		grid:          pl.NewGrid(cfg.IDs, p.Mode == ModeView),
		page:          1,
		savedPages:    make(map[int]bool),
		gw:            gw,
		pageSize:      cfg.PageSize,
		redirectDelay: cfg.RedirectDelay,
		notifier:      cfg.Notifier,
		log:           cfg.Log.Component("pricelist.editor").With().Str("editor_id", id).Str("mode", string(p.Mode)).Logger(),
	}, nil
}

// ID identificador del editor dentro del workspace.
func (e *Editor) ID() string { return e.id }

// Mode modo del editor.
func (e *Editor) Mode() Mode { return e.mode }

// Load carga la primera página (create) o la lista guardada (edit/view).
func (e *Editor) Load(ctx context.Context) error {
	if e.mode == ModeCreate {
		return e.loadPage(ctx, 1)
	}

	e.mu.Lock()
	e.loading = true
	e.mu.Unlock()

	list, err := e.gw.PriceList(ctx, e.priceListID)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	if err != nil {
		e.notifier.Error(loadFailedMessage)
		e.log.Warn().Err(err).Str("price_list_id", e.priceListID).Msg("carga de lista falló")
		return err
	}
	e.header = headerOf(list, e.header)
	e.grid.Hydrate(list.Items)
	e.page = 1
	e.hasMore = false
	e.total = len(list.Items)
	return nil
}

func headerOf(list *entity.PriceList, fallback pl.Header) pl.Header {
	h := pl.Header{
		CompanyID:      list.CompanyID,
		ClientID:       list.ClientID,
		PriceLevel:     list.PriceLevel,
		ApplicableFrom: list.ApplicableFrom,
		StockGroupID:   list.StockGroupID,
		StockGroupName: list.StockGroupName,
	}
	if h.CompanyID == "" {
		h.CompanyID = fallback.CompanyID
	}
	return h
}

func (e *Editor) loadPage(ctx context.Context, page int) error {
	e.mu.Lock()
	e.loading = true
	companyID, groupID := e.header.CompanyID, e.header.StockGroupID
	e.mu.Unlock()

	if groupID == "" {
		groupID = entity.AllStockGroups
	}
	res, err := e.gw.GroupProducts(ctx, companyID, groupID, page, e.pageSize)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	if err != nil {
		// la grilla queda en su último estado bueno
		e.notifier.Error(loadFailedMessage)
		e.log.Warn().Err(err).Int("page", page).Msg("carga de página falló")
		return err
	}
	e.grid.Seed(res.Products, pl.Amount{})
	e.page = page
	e.hasMore = res.HasMore
	e.total = res.Total
	e.log.Debug().Int("page", page).Int("rows", e.grid.Len()).Bool("has_more", res.HasMore).Msg("página cargada")
	return nil
}

// NextPage pasa a la página siguiente. Las ediciones no guardadas de la página
// actual se pierden.
func (e *Editor) NextPage(ctx context.Context) error {
	e.mu.Lock()
	if err := e.paginationGuard(); err != nil {
		e.mu.Unlock()
		return err
	}
	if !e.hasMore {
		e.mu.Unlock()
		return domain.ErrNoMorePages
	}
	next := e.page + 1
	e.mu.Unlock()
	return e.loadPage(ctx, next)
}

// PrevPage vuelve a la página anterior.
func (e *Editor) PrevPage(ctx context.Context) error {
	e.mu.Lock()
	if err := e.paginationGuard(); err != nil {
		e.mu.Unlock()
		return err
	}
	if e.page <= 1 {
		e.mu.Unlock()
		return domain.ErrFirstPage
	}
	prev := e.page - 1
	e.mu.Unlock()
	return e.loadPage(ctx, prev)
}

func (e *Editor) paginationGuard() error {
	if e.mode != ModeCreate {
		return domain.ErrPaginationOff
	}
	if e.loading {
		return domain.ErrLoading
	}
	return nil
}

// SetField edita una celda con el texto tecleado.
func (e *Editor) SetField(rowID string, f pl.Field, input string) (pl.Row, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.SetField(rowID, f, input)
}

// Blur normaliza la celda al perder el foco.
func (e *Editor) Blur(rowID string, f pl.Field) (pl.Row, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Blur(rowID, f)
}

// AppendSlab agrega un tramo tras la fila indicada; si el tope no está
// definido avisa a la UI y no modifica la grilla.
func (e *Editor) AppendSlab(rowID string) (pl.Row, error) {
	e.mu.Lock()
	row, err := e.grid.AppendSlab(rowID)
	e.mu.Unlock()
	if errors.Is(err, domain.ErrSlabBoundaryUnset) {
		e.notifier.Error(err.Error())
	}
	return row, err
}

// RemoveAt quita la fila en esa posición.
func (e *Editor) RemoveAt(index int) (pl.Row, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.RemoveAt(index)
}

// Enter tecla Enter sobre una celda.
func (e *Editor) Enter(from pl.Cell) (pl.EnterResult, error) {
	e.mu.Lock()
	res, err := e.grid.Enter(from)
	e.mu.Unlock()
	if errors.Is(err, domain.ErrSlabBoundaryUnset) {
		e.notifier.Error(err.Error())
	}
	return res, err
}

// Save guarda las filas válidas de la página actual. En edit actualiza la
// lista por id; en create agrega la página. Sin filas válidas no llama al
// backend. Si falla, las filas quedan intactas para reintentar.
func (e *Editor) Save(ctx context.Context) (*SaveResult, error) {
	e.mu.Lock()
	if e.mode == ModeView {
		e.mu.Unlock()
		return nil, domain.ErrReadOnly
	}
	header, page, rows := e.header, e.page, e.grid.Rows()
	e.mu.Unlock()

	payload, err := pl.BuildPagePayload(header, page, rows)
	if err != nil {
		e.notifier.Error(err.Error())
		return nil, err
	}

	var saved *entity.PriceList
	if e.mode == ModeEdit {
		saved, err = e.gw.UpdatePriceList(ctx, e.priceListID, payload)
	} else {
		saved, err = e.gw.CreatePriceListPage(ctx, payload)
	}
	if err != nil {
		e.notifier.Error(saveFailedMessage)
		e.log.Error().Err(err).Int("page", page).Msg("guardado de lista falló")
		return nil, err
	}

	slabs := 0
	for _, it := range payload.Items {
		slabs += len(it.Slabs)
	}
	e.mu.Lock()
	e.savedPages[page] = true
	if e.priceListID == "" && saved != nil {
		e.priceListID = saved.ID
	}
	e.mu.Unlock()

	e.notifier.Success(savedMessage)
	e.log.Info().Int("page", page).Int("items", len(payload.Items)).Int("slabs", slabs).Msg("lista de precios guardada")
	return &SaveResult{
		PriceList:       saved,
		Page:            page,
		SavedItems:      len(payload.Items),
		SavedSlabs:      slabs,
		RedirectTo:      ListRoute,
		RedirectAfter:   e.redirectDelay,
		RedirectAfterMs: e.redirectDelay.Milliseconds(),
	}, nil
}

// Snapshot vista completa del editor.
func (e *Editor) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	paginated := e.mode == ModeCreate
	v := View{
		ID:          e.id,
		Mode:        e.mode,
		Header:      e.header,
		PriceListID: e.priceListID,
		Page:        e.page,
		HasMore:     paginated && e.hasMore,
		Total:       e.total,
		Paginated:   paginated,
		CanNext:     paginated && e.hasMore && !e.loading,
		CanPrev:     paginated && e.page > 1 && !e.loading,
		Loading:     e.loading,
		ReadOnly:    e.grid.ReadOnly(),
		Rows:        e.grid.Display(),
		Gaps:        e.grid.Gaps(),
	}
	for p := range e.savedPages {
		v.SavedPages = append(v.SavedPages, p)
	}
	sort.Ints(v.SavedPages)
	return v
}

// Payload payload que se enviaría al guardar la página actual.
func (e *Editor) Payload() (pl.PagePayload, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return pl.BuildPagePayload(e.header, e.page, e.grid.Rows())
}

// Document lista de precios con las filas válidas de la grilla actual, tal
// como quedaría guardada. Se usa para exportar sin pasar por el backend.
func (e *Editor) Document() *entity.PriceList {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &entity.PriceList{
		ID:             e.priceListID,
		CompanyID:      e.header.CompanyID,
		ClientID:       e.header.ClientID,
		PriceLevel:     e.header.PriceLevel,
		ApplicableFrom: e.header.ApplicableFrom,
		StockGroupID:   e.header.StockGroupID,
		StockGroupName: e.header.StockGroupName,
		Items:          pl.GroupByItem(pl.ValidRows(e.grid.Rows())),
	}
}
