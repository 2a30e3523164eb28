package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/entity"
	"github.com/smallbiz/backoffice/internal/domain/identifier"
)

// ItemInput carries the writable fields of an inventory item
type ItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Unit        string  `json:"unit"`
}

// ItemService manages inventory items
type ItemService interface {
	CreateItem(ctx context.Context, input ItemInput) (*entity.Item, error)
	GetItem(ctx context.Context, id string) (*entity.Item, error)
	UpdateItem(ctx context.Context, id string, input ItemInput) (*entity.Item, error)
	ListItems(ctx context.Context, q port.ListQuery) ([]*entity.Item, error)
}

type itemServiceImpl struct {
	itemRepo port.ItemRepository
	logger   Logger
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo port.ItemRepository, logger Logger) ItemService {
	return &itemServiceImpl{
		itemRepo: itemRepo,
		logger:   logger,
	}
}

// CreateItem validates the input, mints an ID, and persists the item
func (s *itemServiceImpl) CreateItem(ctx context.Context, input ItemInput) (*entity.Item, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item := &entity.Item{
		ID:          identifier.NewEntityID(entity.PrefixItem),
		Name:        input.Name,
		Description: input.Description,
		UnitPrice:   input.UnitPrice,
		Unit:        input.Unit,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to create item", "error", err, "name", input.Name)
		return nil, err
	}

	s.logger.Info("Item created", "id", item.ID, "name", item.Name)
	return item, nil
}

// GetItem retrieves an item by ID
func (s *itemServiceImpl) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

// UpdateItem validates and applies the new field values
func (s *itemServiceImpl) UpdateItem(ctx context.Context, id string, input ItemInput) (*entity.Item, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.UnitPrice = input.UnitPrice
	item.Unit = input.Unit

	if err := s.itemRepo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update item", "error", err, "id", id)
		return nil, err
	}

	return item, nil
}

// ListItems retrieves a page of items
func (s *itemServiceImpl) ListItems(ctx context.Context, q port.ListQuery) ([]*entity.Item, error) {
	q.Limit, q.Offset = clampPage(q.Limit, q.Offset)
	return s.itemRepo.List(ctx, q)
}

func validateItemInput(input ItemInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.UnitPrice < 0 {
		return fmt.Errorf("%w: unit_price must not be negative", ErrValidation)
	}
	return nil
}
