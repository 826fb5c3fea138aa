package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"shop-service/internal/entity"
	"shop-service/internal/repository"
)

// OrderEventWriter is satisfied by *kafka.Writer.
type OrderEventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	events   OrderEventWriter
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository, events OrderEventWriter) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		events:   events,
	}
}

type OrderLineInput struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CreateOrder builds an order from the supplied (product, quantity) pairs.
// The total is the sum of price x quantity at creation time; later price
// changes never recompute it. Order and lines commit in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, sellerID int, lines []OrderLineInput) (*entity.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one line", repository.ErrInvalidInput)
	}

	if _, err := s.users.GetByID(ctx, sellerID); err != nil {
		return nil, err
	}

	var total float64
	orderLines := make([]entity.OrderLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", repository.ErrInvalidInput)
		}

		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		total += product.Price * float64(line.Quantity)
		orderLines = append(orderLines, entity.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
		})
	}

	order := &entity.Order{
		SellerID:  sellerID,
		CreatedAt: time.Now(),
		Total:     total,
		Lines:     orderLines,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	// The order is committed at this point; a failed publish is logged, not
	// surfaced.
	if err := s.publishOrderEvent(ctx, created, "created"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing event for order %d", created.ID)
	}

	return created, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing orders")
		return nil, err
	}
	return orders, nil
}

// DeleteOrder removes the order and its lines.
func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting order %d", id)
		return err
	}
	return nil
}

func (s *OrderService) publishOrderEvent(ctx context.Context, order *entity.Order, key string) error {
	if s.events == nil {
		return nil
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%d", key, order.ID)),
		Value: orderJSON,
	}

	return s.events.WriteMessages(ctx, msg)
}
