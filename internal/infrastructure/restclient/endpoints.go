package restclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/pricelist"
)

// ── Auth ──────────────────────────────────────────────────────────────────────

// Login POST /auth/login.
func (c *Client) Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResult, error) {
	var out entity.AuthResult
	if err := c.Do(ctx, http.MethodPost, "auth/login", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout POST /auth/logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "auth/logout", nil, nil, nil)
}

// Companies GET /company/my-companies: empresas a las que tiene acceso el usuario.
func (c *Client) Companies(ctx context.Context) ([]entity.Company, error) {
	var out envelope[[]entity.Company]
	if err := c.Do(ctx, http.MethodGet, "company/my-companies", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ── Stock ─────────────────────────────────────────────────────────────────────

// StockGroups GET /stock-groups/{companyId}.
func (c *Client) StockGroups(ctx context.Context, companyID, search string) ([]entity.StockGroup, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	var out envelope[[]entity.StockGroup]
	if err := c.Do(ctx, http.MethodGet, "stock-groups/"+url.PathEscape(companyID), q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GroupProducts GET products/stock-group/{companyId}/{groupId}?page=&limit=.
func (c *Client) GroupProducts(ctx context.Context, companyID, groupID string, page, limit int) (*entity.StockItemPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	var out entity.StockItemPage
	path := "products/stock-group/" + url.PathEscape(companyID) + "/" + url.PathEscape(groupID)
	if err := c.Do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Price list ────────────────────────────────────────────────────────────────

// PriceLists GET /price-list?companyId=.
func (c *Client) PriceLists(ctx context.Context, companyID string) ([]entity.PriceList, error) {
	q := url.Values{}
	q.Set("companyId", companyID)
	var out envelope[[]entity.PriceList]
	if err := c.Do(ctx, http.MethodGet, "price-list", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// PriceList GET /price-list/{id}.
func (c *Client) PriceList(ctx context.Context, id string) (*entity.PriceList, error) {
	var out envelope[entity.PriceList]
	if err := c.Do(ctx, http.MethodGet, "price-list/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreatePriceListPage POST /price-list/items: crea la lista o le agrega una página.
func (c *Client) CreatePriceListPage(ctx context.Context, payload pricelist.PagePayload) (*entity.PriceList, error) {
	var out envelope[entity.PriceList]
	if err := c.Do(ctx, http.MethodPost, "price-list/items", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdatePriceList PUT /price-list/{id}.
func (c *Client) UpdatePriceList(ctx context.Context, id string, payload pricelist.PagePayload) (*entity.PriceList, error) {
	var out envelope[entity.PriceList]
	if err := c.Do(ctx, http.MethodPut, "price-list/"+url.PathEscape(id), nil, payload, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ── Orders ────────────────────────────────────────────────────────────────────

// UpdateOrderStatus PATCH /order/{id}/status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	var out envelope[entity.Order]
	body := map[string]string{"status": status}
	if err := c.Do(ctx, http.MethodPatch, "order/"+url.PathEscape(id)+"/status", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ── Analytics ─────────────────────────────────────────────────────────────────

func analyticsQuery(companyID string) url.Values {
	q := url.Values{}
	q.Set("companyId", companyID)
	return q
}

// SalesSummary GET /analytics/sales-summary.
func (c *Client) SalesSummary(ctx context.Context, companyID string) (*entity.SalesSummary, error) {
	var out envelope[entity.SalesSummary]
	if err := c.Do(ctx, http.MethodGet, "analytics/sales-summary", analyticsQuery(companyID), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// TopProducts GET /analytics/top-products.
func (c *Client) TopProducts(ctx context.Context, companyID string) ([]entity.TopProduct, error) {
	var out envelope[[]entity.TopProduct]
	if err := c.Do(ctx, http.MethodGet, "analytics/top-products", analyticsQuery(companyID), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// LowStock GET /analytics/low-stock.
func (c *Client) LowStock(ctx context.Context, companyID string) ([]entity.LowStockItem, error) {
	var out envelope[[]entity.LowStockItem]
	if err := c.Do(ctx, http.MethodGet, "analytics/low-stock", analyticsQuery(companyID), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// RecentOrders GET /analytics/recent-orders.
func (c *Client) RecentOrders(ctx context.Context, companyID string) ([]entity.Order, error) {
	var out envelope[[]entity.Order]
	if err := c.Do(ctx, http.MethodGet, "analytics/recent-orders", analyticsQuery(companyID), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
