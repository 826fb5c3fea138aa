package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shop-service/internal/entity"
)

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepo{db}
}

// Create persists an order together with its lines in a single transaction.
// Either the order and every line commit, or nothing does.
func (r *orderRepo) Create(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	// The batch line insert below needs at least one line to be well-formed.
	if len(order.Lines) == 0 {
		return nil, fmt.Errorf("%w: order has no lines", ErrInvalidInput)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	orderQuery := `INSERT INTO orders (seller_id, created_at, total) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, orderQuery, order.SellerID, order.CreatedAt, order.Total)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create order: %w", err)
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Insert lines with a single batch statement
	lineQuery := `INSERT INTO order_lines (order_id, product_id, quantity) VALUES `
	var values []interface{}
	for _, line := range order.Lines {
		lineQuery += "(?, ?, ?),"
		values = append(values, orderID, line.ProductID, line.Quantity)
	}
	lineQuery = lineQuery[:len(lineQuery)-1]

	_, err = tx.ExecContext(ctx, lineQuery, values...)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create order lines: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.ID = int(orderID)
	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
	}
	return order, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int) (*entity.Order, error) {
	order := &entity.Order{}
	orderQuery := `SELECT id, seller_id, created_at, total FROM orders WHERE id = ?`
	err := r.db.QueryRowContext(ctx, orderQuery, id).Scan(&order.ID, &order.SellerID, &order.CreatedAt, &order.Total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	lineQuery := `
		SELECT ol.id, ol.order_id, ol.product_id, p.name, ol.quantity
		FROM order_lines ol
		JOIN products p ON ol.product_id = p.id
		WHERE ol.order_id = ?
		ORDER BY ol.id`
	rows, err := r.db.QueryContext(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get order %d lines: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line entity.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductName, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}

	return order, rows.Err()
}

// GetAll returns every order with its lines eagerly loaded. Lines are fetched
// with one joined query and grouped in memory, so listing stays at two
// round-trips regardless of order count.
func (r *orderRepo) GetAll(ctx context.Context) ([]entity.Order, error) {
	orderQuery := `SELECT id, seller_id, created_at, total FROM orders ORDER BY id`
	rows, err := r.db.QueryContext(ctx, orderQuery)
	if err != nil {
		return nil, fmt.Errorf("get all orders: %w", err)
	}
	defer rows.Close()

	var orders []entity.Order
	index := make(map[int]int)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.SellerID, &o.CreatedAt, &o.Total); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineQuery := `
		SELECT ol.id, ol.order_id, ol.product_id, p.name, ol.quantity
		FROM order_lines ol
		JOIN products p ON ol.product_id = p.id
		ORDER BY ol.id`
	lineRows, err := r.db.QueryContext(ctx, lineQuery)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var line entity.OrderLine
		if err := lineRows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductName, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		if i, ok := index[line.OrderID]; ok {
			orders[i].Lines = append(orders[i].Lines, line)
		}
	}

	return orders, lineRows.Err()
}

// Delete removes an order and its lines in one transaction.
func (r *orderRepo) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = ?`, id); err != nil {
		tx.Rollback()
		return fmt.Errorf("delete order %d lines: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("delete order %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if affected == 0 {
		tx.Rollback()
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	}

	return tx.Commit()
}
