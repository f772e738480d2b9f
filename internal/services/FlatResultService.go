package services

import (
	"context"
	"errors"
	"fmt"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/repositories/interfaces"
	"strings"
)

type FlatOutcome int

const (
	FlatCreated FlatOutcome = iota
	FlatUpdated
	FlatAdded
)

func (o FlatOutcome) String() string {
	switch o {
	case FlatCreated:
		return "created"
	case FlatUpdated:
		return "updated"
	default:
		return "added"
	}
}

type FlatResultServiceInterface interface {
	// Upload records one ingested reading. An existing entry at the same
	// date and time gets the new number; otherwise the entry is appended,
	// creating the category document on first use.
	Upload(ctx context.Context, req models.FlatUploadRequest) (*models.ResultFlat, FlatOutcome, error)
}

type FlatResultService struct {
	store   interfaces.FlatResultStoreInterface
	keyring providers.CacheKeyringInterface
	cache   readThrough
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewFlatResultService(store interfaces.FlatResultStoreInterface, cache providers.CacheProviderInterface, keyring providers.CacheKeyringInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) FlatResultServiceInterface {
	return &FlatResultService{
		store:   store,
		keyring: keyring,
		cache:   readThrough{cache: cache, logger: logger},
		logger:  logger,
		metrics: metrics,
	}
}

func (s *FlatResultService) Upload(ctx context.Context, req models.FlatUploadRequest) (*models.ResultFlat, FlatOutcome, error) {
	category := strings.TrimSpace(req.CategoryName)
	if category == "" || req.Number == "" {
		return nil, 0, fmt.Errorf("%w: categoryname and number are required", models.ErrInvalidRequest)
	}
	date, err := normalizeDate(req.Date)
	if err != nil {
		return nil, 0, err
	}
	t, err := models.NormalizeTime(req.Time)
	if err != nil {
		return nil, 0, err
	}

	entry := models.FlatEntry{Date: date, Time: t, Number: req.Number}
	root := interfaces.FlatRoot{Number: req.Number, NextResult: t, Mode: req.Mode, Date: date}

	doc, outcome, err := s.merge(ctx, category, entry, root)
	if err != nil {
		s.metrics.IncResultWrites("flat", "error")
		s.logger.Errorf(providers.TypePost, "Flat upload for %s on %s %s failed: %s", category, date, t, err)
		return nil, 0, err
	}

	s.metrics.IncResultWrites("flat", outcome.String())
	s.keyring.Invalidate(category)
	s.cache.store(s.keyring.CategoryKey(category, "results", category, date), doc)
	s.logger.Debugf(providers.TypePost, "Flat reading %s %s for %s %s", date, t, category, outcome)
	return doc, outcome, nil
}

func (s *FlatResultService) merge(ctx context.Context, category string, entry models.FlatEntry, root interfaces.FlatRoot) (*models.ResultFlat, FlatOutcome, error) {
	for attempt := 0; attempt < maxUpsertAttempts; attempt++ {
		doc, err := s.store.SetEntryNumber(ctx, category, entry, root)
		if err == nil {
			return doc, FlatUpdated, nil
		}
		if !errors.Is(err, models.ErrNotMatched) {
			return nil, 0, err
		}

		doc, err = s.store.PushEntry(ctx, category, entry, root)
		if err == nil {
			return doc, FlatAdded, nil
		}
		if !errors.Is(err, models.ErrNotMatched) {
			return nil, 0, err
		}

		// Neither matched: no document yet, or the entry appeared between
		// the two writes. An insert settles the first case and fails on
		// the unique index in the second.
		doc = &models.ResultFlat{
			CategoryName: category,
			Date:         root.Date,
			Result:       []models.FlatEntry{entry},
			Number:       root.Number,
			NextResult:   root.NextResult,
			Mode:         root.Mode,
		}
		err = s.store.Insert(ctx, doc)
		if err == nil {
			return doc, FlatCreated, nil
		}
		if !errors.Is(err, models.ErrAlreadyExists) {
			return nil, 0, err
		}
	}
	return nil, 0, fmt.Errorf("%w: flat upload for %s did not settle after %d attempts", models.ErrStoreUnavailable, category, maxUpsertAttempts)
}
