package entity

import "time"

type TopProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type DashboardStats struct {
	TotalOrders  int          `json:"total_orders"`
	TotalSales   float64      `json:"total_sales"`
	TotalClients int          `json:"total_clients"`
	TopProducts  []TopProduct `json:"top_products"`
	BestSeller   string       `json:"best_seller,omitempty"`
	LastOrderAt  *time.Time   `json:"last_order_at,omitempty"`
}

type MonthlySale struct {
	Product  string `json:"product"`
	Month    string `json:"month"`
	Quantity int    `json:"quantity"`
}
