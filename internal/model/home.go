package model

import "github.com/shopspring/decimal"

// HomeContentEntry is one home-page element (hero image, banner video, ...)
// keyed by its slot.
type HomeContentEntry struct {
	ID      string `json:"_id,omitempty"`
	Key     string `json:"key"`
	Value   string `json:"value"`
	IsImage bool   `json:"isImage"`
}

// HomeContentCategory names a home-page slot.
type HomeContentCategory struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
}

// DashboardData is the home dashboard payload: this month's stats plus the
// most recent orders.
type DashboardData struct {
	TotalUsers   int             `json:"totalUsers"`
	TotalOrders  int             `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	RecentOrders []Order         `json:"recentOrders"`
}
