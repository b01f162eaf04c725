package store

import (
	"context"
	"testing"
	"time"

	"github.com/shelfaware/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_FindMiss(t *testing.T) {
	s := NewMemoryStore()

	product, err := s.FindByUPC(context.Background(), "012345678905")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domain.ErrProductNotCached)
}

func TestMemoryStore_UpsertAndFind(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	stored := &domain.Product{
		UPC:      "012345678905",
		Title:    "Whole Milk",
		Category: domain.CategoryDairyEggs,
	}
	require.NoError(t, s.Upsert(ctx, stored))

	found, err := s.FindByUPC(ctx, "012345678905")
	require.NoError(t, err)
	assert.Equal(t, *stored, *found)
	assert.Equal(t, 1, s.Size())
}

func TestMemoryStore_UpsertReplacesExistingRow(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, &domain.Product{UPC: "012345678905", Title: "Whole Milk"}))
	require.NoError(t, s.Upsert(ctx, &domain.Product{UPC: "012345678905", Title: "Skim Milk"}))

	found, err := s.FindByUPC(ctx, "012345678905")
	require.NoError(t, err)
	assert.Equal(t, "Skim Milk", found.Title)
	assert.Equal(t, 1, s.Size())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	expiry := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Upsert(ctx, &domain.Product{UPC: "96385074", Title: "Crackers", ExpiryDate: expiry}))

	first, err := s.FindByUPC(ctx, "96385074")
	require.NoError(t, err)
	first.Title = "mutated"

	second, err := s.FindByUPC(ctx, "96385074")
	require.NoError(t, err)
	assert.Equal(t, "Crackers", second.Title)
}
