package dto

import "github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"

// DashboardDTO respuesta de GET /api/dashboard.
// Cada widget trae datos o su valor vacío; Failed lista los que fallaron.
type DashboardDTO struct {
	Summary      entity.SalesSummary   `json:"summary"`
	TopProducts  []entity.TopProduct   `json:"topProducts"`
	LowStock     []entity.LowStockItem `json:"lowStock"`
	RecentOrders []entity.Order        `json:"recentOrders"`

	// Widgets que no pudieron cargarse: "summary", "topProducts", "lowStock", "recentOrders".
	Failed []string `json:"failed,omitempty"`

	DateLabel string `json:"dateLabel"` // ej: "Octubre 2026"
}
