package service

import (
	"context"
	"sort"
	"time"

	"shop-service/internal/entity"
	"shop-service/internal/repository"
)

const topProductLimit = 5

// StatsService computes the reporting aggregates. Everything is recomputed
// from the store on each call; there is no cached or incremental state.
type StatsService struct {
	orders  repository.OrderRepository
	clients repository.ClientRepository
}

func NewStatsService(orders repository.OrderRepository, clients repository.ClientRepository) *StatsService {
	return &StatsService{orders: orders, clients: clients}
}

// Dashboard tallies order count, total sales, client count, quantity sold per
// product and the most recent order timestamp in one pass over the orders.
// Products with equal quantities keep their first-encountered order, which
// makes the top list deterministic.
func (s *StatsService) Dashboard(ctx context.Context) (*entity.DashboardStats, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading orders for dashboard")
		return nil, err
	}

	totalClients, err := s.clients.Count(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting clients")
		return nil, err
	}

	var totalSales float64
	var lastOrderAt *time.Time
	quantities := make(map[string]int)
	var names []string

	for _, order := range orders {
		totalSales += order.Total
		if lastOrderAt == nil || order.CreatedAt.After(*lastOrderAt) {
			t := order.CreatedAt
			lastOrderAt = &t
		}

		for _, line := range order.Lines {
			if _, seen := quantities[line.ProductName]; !seen {
				names = append(names, line.ProductName)
			}
			quantities[line.ProductName] += line.Quantity
		}
	}

	top := make([]entity.TopProduct, 0, len(names))
	for _, name := range names {
		top = append(top, entity.TopProduct{Name: name, Quantity: quantities[name]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Quantity > top[j].Quantity
	})

	bestSeller := ""
	if len(top) > 0 {
		bestSeller = top[0].Name
	}
	if len(top) > topProductLimit {
		top = top[:topProductLimit]
	}

	return &entity.DashboardStats{
		TotalOrders:  len(orders),
		TotalSales:   totalSales,
		TotalClients: totalClients,
		TopProducts:  top,
		BestSeller:   bestSeller,
		LastOrderAt:  lastOrderAt,
	}, nil
}

type monthKey struct {
	product string
	month   time.Time
}

// MonthlySales groups order lines by (product, calendar month of the order
// date) and sums the quantities. Records come out ordered by month ascending;
// within a month groups keep their first-encountered order.
func (s *StatsService) MonthlySales(ctx context.Context) ([]entity.MonthlySale, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading orders for monthly sales")
		return nil, err
	}

	sums := make(map[monthKey]int)
	var keys []monthKey

	for _, order := range orders {
		month := time.Date(order.CreatedAt.Year(), order.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		for _, line := range order.Lines {
			key := monthKey{product: line.ProductName, month: month}
			if _, seen := sums[key]; !seen {
				keys = append(keys, key)
			}
			sums[key] += line.Quantity
		}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].month.Before(keys[j].month)
	})

	sales := make([]entity.MonthlySale, 0, len(keys))
	for _, key := range keys {
		sales = append(sales, entity.MonthlySale{
			Product:  key.product,
			Month:    key.month.Month().String(),
			Quantity: sums[key],
		})
	}

	return sales, nil
}
