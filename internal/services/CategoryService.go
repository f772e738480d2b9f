package services

import (
	"context"
	"fmt"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/repositories/interfaces"
	"strings"

	json "github.com/goccy/go-json"
)

// CategoriesCacheKey is literal: registration deletes it directly.
const CategoriesCacheKey = "categories:all"

type CategoryServiceInterface interface {
	// RegisterKey binds a known key to a category, first write wins.
	// Either side already being registered yields models.ErrAlreadyExists.
	RegisterKey(ctx context.Context, key, category string) (*models.CategoryKey, error)
	ListCategories(ctx context.Context) (json.RawMessage, error)
}

type CategoryService struct {
	store  interfaces.CategoryStoreInterface
	cache  readThrough
	logger providers.Logger
}

func NewCategoryService(store interfaces.CategoryStoreInterface, cache providers.CacheProviderInterface, logger providers.Logger) CategoryServiceInterface {
	return &CategoryService{
		store:  store,
		cache:  readThrough{cache: cache, logger: logger},
		logger: logger,
	}
}

func (s *CategoryService) RegisterKey(ctx context.Context, key, category string) (*models.CategoryKey, error) {
	key, category = strings.TrimSpace(key), strings.TrimSpace(category)
	if category == "" || !models.IsKnownKey(key) {
		return nil, fmt.Errorf("%w: unknown key %q", models.ErrInvalidRequest, key)
	}

	doc := &models.CategoryKey{Key: key, CategoryName: category}
	if err := s.store.Insert(ctx, doc); err != nil {
		s.logger.Infof(providers.TypePost, "Key %s for %s not registered: %s", key, category, err)
		return nil, err
	}

	s.cache.drop(CategoriesCacheKey)
	s.logger.Infof(providers.TypePost, "Key %s registered for %s", key, category)
	return doc, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) (json.RawMessage, error) {
	return s.cache.fetch(CategoriesCacheKey, func() (any, error) {
		return s.store.FindAll(ctx)
	})
}
