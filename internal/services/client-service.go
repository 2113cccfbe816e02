package services

import (
	"context"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/types"
)

type ClientServiceInterface interface {
	GetClients(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Client, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Client, error)
	Create(ctx context.Context, workspaceID uint64, payload dto.CreateClientDTO) (*entities.Client, error)
	Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateClientDTO) (*entities.Client, error)
	Delete(ctx context.Context, workspaceID, id uint64) error
}

type ClientService struct {
	clientRepo repositories.ClientRepositoryInterface
}

func NewClientService(clientRepo repositories.ClientRepositoryInterface) ClientServiceInterface {
	return &ClientService{clientRepo: clientRepo}
}

func (s *ClientService) GetClients(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Client, uint64, error) {
	return s.clientRepo.GetClients(ctx, workspaceID, filter)
}

func (s *ClientService) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Client, error) {
	return s.clientRepo.FindByID(ctx, workspaceID, id)
}

func (s *ClientService) Create(ctx context.Context, workspaceID uint64, payload dto.CreateClientDTO) (*entities.Client, error) {
	id, err := s.clientRepo.Create(ctx, entities.Client{
		WorkspaceID: workspaceID,
		Name:        payload.Name,
		ContactName: payload.ContactName,
		Email:       payload.Email,
		PhoneNumber: payload.PhoneNumber,
		Address:     payload.Address,
	})
	if err != nil {
		return nil, err
	}
	return s.clientRepo.FindByID(ctx, workspaceID, id)
}

func (s *ClientService) Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateClientDTO) (*entities.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		client.Name = *payload.Name
	}
	if payload.ContactName != nil {
		client.ContactName = payload.ContactName
	}
	if payload.Email != nil {
		client.Email = payload.Email
	}
	if payload.PhoneNumber != nil {
		client.PhoneNumber = payload.PhoneNumber
	}
	if payload.Address != nil {
		client.Address = payload.Address
	}

	if err := s.clientRepo.Update(ctx, workspaceID, id, *client); err != nil {
		return nil, err
	}
	return s.clientRepo.FindByID(ctx, workspaceID, id)
}

func (s *ClientService) Delete(ctx context.Context, workspaceID, id uint64) error {
	return s.clientRepo.Delete(ctx, workspaceID, id)
}
