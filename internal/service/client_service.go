package service

import (
	"context"
	"fmt"

	"shop-service/internal/entity"
	"shop-service/internal/repository"
)

type ClientService struct {
	clients repository.ClientRepository
}

func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) CreateClient(ctx context.Context, name, email, phone, address string) (*entity.Client, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: client name and email required", repository.ErrInvalidInput)
	}

	client := &entity.Client{Name: name, Email: email, Phone: phone, Address: address}
	created, err := s.clients.Create(ctx, client)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating client")
		return nil, err
	}

	return created, nil
}

// UpdateClient applies a partial update: nil fields are left unchanged.
func (s *ClientService) UpdateClient(ctx context.Context, id int, name, email, phone, address *string) (*entity.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, fmt.Errorf("%w: client name required", repository.ErrInvalidInput)
		}
		client.Name = *name
	}
	if email != nil {
		if *email == "" {
			return nil, fmt.Errorf("%w: client email required", repository.ErrInvalidInput)
		}
		client.Email = *email
	}
	if phone != nil {
		client.Phone = *phone
	}
	if address != nil {
		client.Address = *address
	}

	updated, err := s.clients.Update(ctx, client)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating client %d", id)
		return nil, err
	}

	return updated, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id int) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting client %d", id)
		return err
	}
	return nil
}

func (s *ClientService) ListClients(ctx context.Context) ([]entity.Client, error) {
	clients, err := s.clients.GetAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing clients")
		return nil, err
	}
	return clients, nil
}
