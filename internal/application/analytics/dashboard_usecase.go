// Package analytics contiene el caso de uso del Dashboard: carga en paralelo
// los widgets de analítica y tolera fallos parciales.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/dto"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/logger"
)

// Nombres de widget reportados en DashboardDTO.Failed.
const (
	WidgetSummary      = "summary"
	WidgetTopProducts  = "topProducts"
	WidgetLowStock     = "lowStock"
	WidgetRecentOrders = "recentOrders"
)

// Source endpoints de analítica del backend (restclient.Client los implementa).
type Source interface {
	SalesSummary(ctx context.Context, companyID string) (*entity.SalesSummary, error)
	TopProducts(ctx context.Context, companyID string) ([]entity.TopProduct, error)
	LowStock(ctx context.Context, companyID string) ([]entity.LowStockItem, error)
	RecentOrders(ctx context.Context, companyID string) ([]entity.Order, error)
}

// DashboardUseCase arma el dashboard de una empresa.
type DashboardUseCase struct {
	src Source
	log *logger.Logger
	now func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(src Source, log *logger.Logger) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{src: src, log: log.Component("dashboard"), now: time.Now}
}

// GetDashboard lanza las 4 llamadas en paralelo y espera a todas ("settle all").
// Un widget que falla queda con su valor vacío y se anota en Failed; el
// dashboard nunca falla completo.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, companyID string) *dto.DashboardDTO {
	type summaryResult struct {
		v   *entity.SalesSummary
		err error
	}
	type topResult struct {
		v   []entity.TopProduct
		err error
	}
	type lowResult struct {
		v   []entity.LowStockItem
		err error
	}
	type ordersResult struct {
		v   []entity.Order
		err error
	}

	summaryCh := make(chan summaryResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan lowResult, 1)
	ordersCh := make(chan ordersResult, 1)

	go func() {
		v, err := uc.src.SalesSummary(ctx, companyID)
		summaryCh <- summaryResult{v, err}
	}()
	go func() {
		v, err := uc.src.TopProducts(ctx, companyID)
		topCh <- topResult{v, err}
	}()
	go func() {
		v, err := uc.src.LowStock(ctx, companyID)
		lowCh <- lowResult{v, err}
	}()
	go func() {
		v, err := uc.src.RecentOrders(ctx, companyID)
		ordersCh <- ordersResult{v, err}
	}()

	summary := <-summaryCh
	top := <-topCh
	low := <-lowCh
	orders := <-ordersCh

	out := &dto.DashboardDTO{
		TopProducts:  []entity.TopProduct{},
		LowStock:     []entity.LowStockItem{},
		RecentOrders: []entity.Order{},
		DateLabel:    monthLabel(uc.now()),
	}
	fail := func(widget string, err error) {
		out.Failed = append(out.Failed, widget)
		uc.log.Warn().Err(err).Str("widget", widget).Str("company_id", companyID).Msg("widget sin datos")
	}

	if summary.err != nil || summary.v == nil {
		fail(WidgetSummary, summary.err)
	} else {
		out.Summary = *summary.v
	}
	if top.err != nil {
		fail(WidgetTopProducts, top.err)
	} else if top.v != nil {
		out.TopProducts = top.v
	}
	if low.err != nil {
		fail(WidgetLowStock, low.err)
	} else if low.v != nil {
		out.LowStock = low.v
	}
	if orders.err != nil {
		fail(WidgetRecentOrders, orders.err)
	} else if orders.v != nil {
		out.RecentOrders = orders.v
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
