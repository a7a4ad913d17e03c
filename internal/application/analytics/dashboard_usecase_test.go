package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/analytics"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

type stubSource struct {
	summaryErr, topErr, lowErr, ordersErr error
}

func (s stubSource) SalesSummary(context.Context, string) (*entity.SalesSummary, error) {
	if s.summaryErr != nil {
		return nil, s.summaryErr
	}
	return &entity.SalesSummary{TotalSales: decimal.NewFromInt(1200), TotalOrders: 4}, nil
}

func (s stubSource) TopProducts(context.Context, string) ([]entity.TopProduct, error) {
	if s.topErr != nil {
		return nil, s.topErr
	}
	return []entity.TopProduct{{ItemID: "i1", Name: "Arroz"}}, nil
}

func (s stubSource) LowStock(context.Context, string) ([]entity.LowStockItem, error) {
	if s.lowErr != nil {
		return nil, s.lowErr
	}
	return []entity.LowStockItem{{ItemID: "i2"}}, nil
}

func (s stubSource) RecentOrders(context.Context, string) ([]entity.Order, error) {
	if s.ordersErr != nil {
		return nil, s.ordersErr
	}
	return []entity.Order{{ID: "o1"}}, nil
}

func TestGetDashboard_TodoOK(t *testing.T) {
	uc := analytics.NewDashboardUseCase(stubSource{}, nil)

	got := uc.GetDashboard(context.Background(), "C1")

	require.NotNil(t, got)
	assert.Empty(t, got.Failed)
	assert.Equal(t, 4, got.Summary.TotalOrders)
	assert.Len(t, got.TopProducts, 1)
	assert.Len(t, got.LowStock, 1)
	assert.Len(t, got.RecentOrders, 1)
	assert.NotEmpty(t, got.DateLabel)
}

func TestGetDashboard_FallosParcialesUsanVacios(t *testing.T) {
	boom := errors.New("503")
	uc := analytics.NewDashboardUseCase(stubSource{summaryErr: boom, lowErr: boom}, nil)

	got := uc.GetDashboard(context.Background(), "C1")

	assert.ElementsMatch(t, []string{analytics.WidgetSummary, analytics.WidgetLowStock}, got.Failed)
	assert.True(t, got.Summary.TotalSales.IsZero())
	assert.NotNil(t, got.LowStock)
	assert.Empty(t, got.LowStock)
	assert.Len(t, got.TopProducts, 1, "los widgets sanos conservan sus datos")
	assert.Len(t, got.RecentOrders, 1)
}

func TestGetDashboard_TodoFalla(t *testing.T) {
	boom := errors.New("down")
	uc := analytics.NewDashboardUseCase(stubSource{boom, boom, boom, boom}, nil)

	got := uc.GetDashboard(context.Background(), "C1")

	assert.Len(t, got.Failed, 4)
	assert.Empty(t, got.TopProducts)
	assert.Empty(t, got.RecentOrders)
}
