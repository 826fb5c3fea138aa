package service

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"shop-service/internal/entity"
	"shop-service/internal/repository"
)

type fakeUserRepo struct {
	users  map[int]*entity.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("%w: username %q taken", repository.ErrDuplicate, user.Username)
		}
	}
	r.nextID++
	user.ID = r.nextID
	copy := *user
	r.users[user.ID] = &copy
	return user, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", repository.ErrNotFound, id)
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copy := *u
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("%w: user %q", repository.ErrNotFound, username)
}

func (r *fakeUserRepo) GetAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	for id := 1; id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("%w: user %d", repository.ErrNotFound, id)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("%w: user %d", repository.ErrNotFound, id)
	}
	delete(r.users, id)
	return nil
}

type fakeProductRepo struct {
	products map[int]*entity.Product
	nextID   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int]*entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	r.nextID++
	product.ID = r.nextID
	copy := *product
	r.products[product.ID] = &copy
	return product, nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id int) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", repository.ErrNotFound, id)
	}
	copy := *p
	return &copy, nil
}

func (r *fakeProductRepo) GetAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	for id := 1; id <= r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if _, ok := r.products[product.ID]; !ok {
		return nil, fmt.Errorf("%w: product %d", repository.ErrNotFound, product.ID)
	}
	copy := *product
	r.products[product.ID] = &copy
	return product, nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("%w: product %d", repository.ErrNotFound, id)
	}
	delete(r.products, id)
	return nil
}

type fakeOrderRepo struct {
	orders []entity.Order
	nextID int
	err    error
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	order.ID = r.nextID
	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
	}
	r.orders = append(r.orders, *order)
	return order, nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id int) (*entity.Order, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			return &r.orders[i], nil
		}
	}
	return nil, fmt.Errorf("%w: order %d", repository.ErrNotFound, id)
}

func (r *fakeOrderRepo) GetAll(ctx context.Context) ([]entity.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.orders, nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id int) error {
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: order %d", repository.ErrNotFound, id)
}

type fakeClientRepo struct {
	clients map[int]*entity.Client
	nextID  int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[int]*entity.Client)}
}

func (r *fakeClientRepo) Create(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.Email == client.Email {
			return nil, fmt.Errorf("%w: client email %q taken", repository.ErrDuplicate, client.Email)
		}
	}
	r.nextID++
	client.ID = r.nextID
	copy := *client
	r.clients[client.ID] = &copy
	return client, nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id int) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, fmt.Errorf("%w: client %d", repository.ErrNotFound, id)
	}
	copy := *c
	return &copy, nil
}

func (r *fakeClientRepo) GetAll(ctx context.Context) ([]entity.Client, error) {
	var clients []entity.Client
	for id := 1; id <= r.nextID; id++ {
		if c, ok := r.clients[id]; ok {
			clients = append(clients, *c)
		}
	}
	return clients, nil
}

func (r *fakeClientRepo) Count(ctx context.Context) (int, error) {
	return len(r.clients), nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	if _, ok := r.clients[client.ID]; !ok {
		return nil, fmt.Errorf("%w: client %d", repository.ErrNotFound, client.ID)
	}
	copy := *client
	r.clients[client.ID] = &copy
	return client, nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.clients[id]; !ok {
		return fmt.Errorf("%w: client %d", repository.ErrNotFound, id)
	}
	delete(r.clients, id)
	return nil
}

type fakeTokenStore struct {
	tokens map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]string)}
}

func (s *fakeTokenStore) Save(ctx context.Context, username, token string, ttl time.Duration) error {
	s.tokens[username] = token
	return nil
}

func (s *fakeTokenStore) Get(ctx context.Context, username string) (string, error) {
	return s.tokens[username], nil
}

func (s *fakeTokenStore) Delete(ctx context.Context, username string) error {
	delete(s.tokens, username)
	return nil
}

type fakeEventWriter struct {
	messages []kafka.Message
}

func (w *fakeEventWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}
