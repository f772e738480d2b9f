package services

import (
	"context"
	"resultsd/internal/models"
	"resultsd/internal/testutil"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterKey(t *testing.T) {
	store := &testutil.MemCategoryStore{}
	cache := testutil.NewMockCache()
	svc := NewCategoryService(store, cache, &testutil.MockLogger{})
	ctx := context.Background()

	doc, err := svc.RegisterKey(ctx, "md-9281", "Minidiswar")
	require.NoError(t, err)
	assert.False(t, doc.ID.IsZero())
	assert.Contains(t, cache.Deleted, CategoriesCacheKey)

	_, err = svc.RegisterKey(ctx, "md-9281", "Other")
	assert.ErrorIs(t, err, models.ErrAlreadyExists)

	_, err = svc.RegisterKey(ctx, "shr-2318", "Minidiswar")
	assert.ErrorIs(t, err, models.ErrAlreadyExists)

	_, err = svc.RegisterKey(ctx, "made-up", "Fresh")
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
}

func TestListCategories_CachedUntilRegistration(t *testing.T) {
	store := &testutil.MemCategoryStore{}
	svc := NewCategoryService(store, testutil.NewMockCache(), &testutil.MockLogger{})
	ctx := context.Background()

	_, err := svc.RegisterKey(ctx, "md-9281", "Minidiswar")
	require.NoError(t, err)
	raw, err := svc.ListCategories(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Insert(ctx, &models.CategoryKey{Key: "shr-2318", CategoryName: "Shri"}))
	again, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, raw, again)

	_, err = svc.RegisterKey(ctx, "ggn-7801", "Gurgaon")
	require.NoError(t, err)
	fresh, err := svc.ListCategories(ctx)
	require.NoError(t, err)

	var keys []models.CategoryKey
	require.NoError(t, json.Unmarshal(fresh, &keys))
	assert.Len(t, keys, 3)
	assert.Equal(t, "Minidiswar", keys[0].CategoryName)
}
