package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

func TestItemService_CreateItem(t *testing.T) {
	tests := []struct {
		name    string
		input   ItemInput
		wantErr string
	}{
		{
			name:  "valid item",
			input: ItemInput{Name: "Widget", UnitPrice: 9.5, Unit: "pcs"},
		},
		{
			name:  "zero price allowed",
			input: ItemInput{Name: "Sample"},
		},
		{
			name:    "missing name",
			input:   ItemInput{UnitPrice: 10},
			wantErr: "name is required",
		},
		{
			name:    "negative price",
			input:   ItemInput{Name: "Widget", UnitPrice: -1},
			wantErr: "unit_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *entity.Item
			repo := &mockItemRepo{
				createFunc: func(ctx context.Context, item *entity.Item) error {
					created = item
					return nil
				},
			}
			svc := NewItemService(repo, &mockLogger{})

			item, err := svc.CreateItem(context.Background(), tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, created)
				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(item.ID, "t"))
			assert.Equal(t, tt.input.Name, item.Name)
			assert.True(t, item.IsActive)
			assert.Same(t, item, created)
		})
	}
}

func TestItemService_ListItems_ClampsPagination(t *testing.T) {
	var got port.ListQuery
	repo := &mockItemRepo{
		listFunc: func(ctx context.Context, q port.ListQuery) ([]*entity.Item, error) {
			got = q
			return nil, nil
		},
	}
	svc := NewItemService(repo, &mockLogger{})

	_, err := svc.ListItems(context.Background(), port.ListQuery{Limit: 1000, Offset: -3})

	require.NoError(t, err)
	assert.Equal(t, 20, got.Limit)
	assert.Equal(t, 0, got.Offset)
}
