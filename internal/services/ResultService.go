package services

import (
	"context"
	"errors"
	"fmt"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/repositories/interfaces"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxUpsertAttempts bounds the conditional-update retry loop. Every retry
// follows a concurrent write that changed the document under us.
const maxUpsertAttempts = 5

type ResultServiceInterface interface {
	UpsertReading(ctx context.Context, in models.UpsertInput) (*models.Result, error)
	UpdateTimeEntry(ctx context.Context, id, date, time string, number models.NumberString, nextResult string) (*models.Result, error)
	DeleteTimeEntry(ctx context.Context, id, date, time string) (*models.Result, error)
}

type ResultService struct {
	store   interfaces.ResultStoreInterface
	keyring providers.CacheKeyringInterface
	cache   readThrough
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewResultService(store interfaces.ResultStoreInterface, cache providers.CacheProviderInterface, keyring providers.CacheKeyringInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ResultServiceInterface {
	return &ResultService{
		store:   store,
		keyring: keyring,
		cache:   readThrough{cache: cache, logger: logger},
		logger:  logger,
		metrics: metrics,
	}
}

// nextPointer normalizes the root "what's next" time, keeping the raw
// value when it is not a recognizable time.
func nextPointer(raw string) string {
	if t, err := models.NormalizeTime(raw); err == nil {
		return t
	}
	return strings.TrimSpace(raw)
}

func normalizeDate(raw string) (string, error) {
	date, err := models.NormalizeDate(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrInvalidRequest, err)
	}
	return date, nil
}

func (s *ResultService) UpsertReading(ctx context.Context, in models.UpsertInput) (*models.Result, error) {
	category := strings.TrimSpace(in.CategoryName)
	if category == "" || in.Number == "" {
		return nil, fmt.Errorf("%w: categoryname and number are required", models.ErrInvalidRequest)
	}
	date, err := normalizeDate(in.Date)
	if err != nil {
		return nil, err
	}
	t, err := models.NormalizeTime(in.Time)
	if err != nil {
		return nil, err
	}

	entries := []models.Reading{{Time: t, Number: in.Number}}
	if next, err := models.NormalizeTime(in.NextResultTime); err == nil && in.NextResultNumber != "" && next != t {
		entries = append(entries, models.Reading{Time: next, Number: in.NextResultNumber})
	}
	nextResult := nextPointer(in.NextResultTime)

	doc, outcome, err := s.merge(ctx, category, date, entries, func() *models.Result {
		number, _ := in.Number.Float()
		return &models.Result{
			CategoryName: category,
			Date:         in.Date,
			Number:       number,
			NextResult:   nextResult,
			Mode:         in.Mode,
			Key:          in.Key,
			Result:       []models.DateGroup{{Date: date, Times: entries}},
		}
	}, nextResult)
	if err != nil {
		var dup *models.DuplicateTimeError
		if errors.As(err, &dup) {
			s.metrics.IncResultWrites("grouped", "duplicate")
			s.logger.Infof(providers.TypePost, "Duplicate time(s) %v for %s on %s", dup.Times, category, date)
		} else {
			s.metrics.IncResultWrites("grouped", "error")
			s.logger.Errorf(providers.TypePost, "Upsert for %s on %s failed: %s", category, date, err)
		}
		return nil, err
	}

	s.metrics.IncResultWrites("grouped", outcome)
	s.keyring.Invalidate(category)
	s.cache.store(s.keyring.CategoryKey(category, "results", category, date), doc)
	s.logger.Debugf(providers.TypePost, "Reading %s %s stored for %s (%s)", date, t, category, outcome)
	return doc, nil
}

// merge runs the three conditional writes in order: append to the existing
// date group, append a new date group, create the document. A write that
// matches nothing means the document is not in the shape that write
// expects, so the current state is read to tell a duplicate from a race.
func (s *ResultService) merge(ctx context.Context, category, date string, entries []models.Reading, create func() *models.Result, nextResult string) (*models.Result, string, error) {
	for attempt := 0; attempt < maxUpsertAttempts; attempt++ {
		doc, err := s.store.PushTimes(ctx, category, date, entries, nextResult)
		if err == nil {
			return doc, "appended", nil
		}
		if !errors.Is(err, models.ErrNotMatched) {
			return nil, "", err
		}

		doc, err = s.store.PushDateGroup(ctx, category, models.DateGroup{Date: date, Times: entries}, nextResult)
		if err == nil {
			return doc, "new_date", nil
		}
		if !errors.Is(err, models.ErrNotMatched) {
			return nil, "", err
		}

		existing, err := s.store.FindByCategory(ctx, category)
		switch {
		case err == nil:
			if g := existing.Group(date); g != nil {
				if dup := g.Overlap(entries); len(dup) > 0 {
					return nil, "", &models.DuplicateTimeError{Times: dup}
				}
			}
			continue
		case !errors.Is(err, models.ErrNotFound):
			return nil, "", err
		}

		doc = create()
		err = s.store.Insert(ctx, doc)
		if err == nil {
			return doc, "created", nil
		}
		if !errors.Is(err, models.ErrAlreadyExists) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("%w: upsert for %s did not settle after %d attempts", models.ErrStoreUnavailable, category, maxUpsertAttempts)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", models.ErrInvalidID, id)
	}
	return oid, nil
}

func (s *ResultService) entryCoordinates(id, date, time string) (primitive.ObjectID, string, string, error) {
	oid, err := parseID(id)
	if err != nil {
		return oid, "", "", err
	}
	d, err := normalizeDate(date)
	if err != nil {
		return oid, "", "", err
	}
	t, err := models.NormalizeTime(time)
	if err != nil {
		return oid, "", "", err
	}
	return oid, d, t, nil
}

func (s *ResultService) UpdateTimeEntry(ctx context.Context, id, date, time string, number models.NumberString, nextResult string) (*models.Result, error) {
	oid, d, t, err := s.entryCoordinates(id, date, time)
	if err != nil {
		return nil, err
	}
	if number == "" {
		return nil, fmt.Errorf("%w: number is required", models.ErrInvalidRequest)
	}

	next := ""
	if nextResult != "" {
		next = nextPointer(nextResult)
	}

	doc, err := s.store.SetTimeNumber(ctx, oid, d, t, number, next)
	if err != nil {
		s.logFailure("Update", id, d, t, err)
		return nil, err
	}

	s.metrics.IncResultWrites("grouped", "updated")
	s.keyring.Invalidate(doc.CategoryName)
	s.logger.Infof(providers.TypePost, "Entry %s %s of %s set to %s", d, t, doc.CategoryName, number)
	return doc, nil
}

func (s *ResultService) DeleteTimeEntry(ctx context.Context, id, date, time string) (*models.Result, error) {
	oid, d, t, err := s.entryCoordinates(id, date, time)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.PullTime(ctx, oid, d, t)
	if err != nil {
		s.logFailure("Delete", id, d, t, err)
		return nil, err
	}

	s.metrics.IncResultWrites("grouped", "deleted")
	s.keyring.Invalidate(doc.CategoryName)
	s.logger.Infof(providers.TypePost, "Entry %s %s of %s removed", d, t, doc.CategoryName)
	return doc, nil
}

func (s *ResultService) logFailure(op, id, date, time string, err error) {
	if errors.Is(err, models.ErrNotFound) {
		s.logger.Debugf(providers.TypePost, "%s of %s %s in %s: no such entry", op, date, time, id)
		return
	}
	s.logger.Errorf(providers.TypePost, "%s of %s %s in %s failed: %s", op, date, time, id, err)
}
