package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shop-service/internal/entity"
)

type clientRepo struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepo{db}
}

func (r *clientRepo) Create(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	query := `INSERT INTO clients (name, email, phone, address) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, client.Name, client.Email, client.Phone, client.Address)
	if err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: client email %q taken", ErrDuplicate, client.Email)
		}
		return nil, fmt.Errorf("create client: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	client.ID = int(id)
	return client, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id int) (*entity.Client, error) {
	client := &entity.Client{}
	query := `SELECT id, name, email, phone, address FROM clients WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: client %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get client %d: %w", id, err)
	}

	return client, nil
}

func (r *clientRepo) GetAll(ctx context.Context) ([]entity.Client, error) {
	query := `SELECT id, name, email, phone, address FROM clients ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all clients: %w", err)
	}
	defer rows.Close()

	var clients []entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (r *clientRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return count, nil
}

func (r *clientRepo) Update(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	query := `UPDATE clients SET name = ?, email = ?, phone = ?, address = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, client.Name, client.Email, client.Phone, client.Address, client.ID)
	if err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: client email %q taken", ErrDuplicate, client.Email)
		}
		return nil, fmt.Errorf("update client %d: %w", client.ID, err)
	}
	return client, nil
}

func (r *clientRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: client %d", ErrNotFound, id)
	}

	return nil
}
