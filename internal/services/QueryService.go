package services

import (
	"context"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/repositories/interfaces"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
)

// ScraperMode selects the flat ingester-fed documents in by-date and
// by-month lookups.
const ScraperMode = "scraper"

// MonthWindow is the scoped month lookup: readings between the first of
// the month and the selected date.
type MonthWindow struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

// QueryServiceInterface answers every read over both result models. Each
// method returns the JSON encoding of its data, cached or freshly computed.
type QueryServiceInterface interface {
	FetchToday(ctx context.Context) (json.RawMessage, error)
	FetchMonth(ctx context.Context) (json.RawMessage, error)
	FetchMonthWindow(ctx context.Context, selectedDate, category, mode string) (*MonthWindow, error)
	FetchByDate(ctx context.Context, category, date, mode string) (json.RawMessage, error)
	FetchByID(ctx context.Context, id string) (json.RawMessage, error)
}

type QueryService struct {
	grouped interfaces.ResultStoreInterface
	flat    interfaces.FlatResultStoreInterface
	keyring providers.CacheKeyringInterface
	cache   readThrough
	clock   clockwork.Clock
	loc     *time.Location
}

func NewQueryService(grouped interfaces.ResultStoreInterface, flat interfaces.FlatResultStoreInterface, cache providers.CacheProviderInterface, keyring providers.CacheKeyringInterface, logger providers.Logger, clock clockwork.Clock, loc *time.Location) QueryServiceInterface {
	return &QueryService{
		grouped: grouped,
		flat:    flat,
		keyring: keyring,
		cache:   readThrough{cache: cache, logger: logger},
		clock:   clock,
		loc:     loc,
	}
}

func (s *QueryService) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// FetchToday returns today's date group of every category, latest reading first.
func (s *QueryService) FetchToday(ctx context.Context) (json.RawMessage, error) {
	today := s.now().Format(models.DateLayout)
	return s.cache.fetch(s.keyring.GlobalKey("results", "today", today), func() (any, error) {
		docs, err := s.grouped.FindWithGroup(ctx, today)
		if err != nil {
			return nil, err
		}
		out := make([]*models.Result, 0, len(docs))
		for _, doc := range docs {
			c := doc.Clone()
			c.Result = keepGroups(c.Result, func(g models.DateGroup) bool { return g.Date == today })
			for i := range c.Result {
				models.SortReadings(c.Result[i].Times, true)
			}
			out = append(out, c)
		}
		return out, nil
	})
}

// FetchMonth returns this month's readings of both models, grouped
// documents first. Today's readings exclude the slots not yet due.
func (s *QueryService) FetchMonth(ctx context.Context) (json.RawMessage, error) {
	now := s.now()
	month := now.Format(models.MonthLayout)
	return s.cache.fetch(s.keyring.GlobalKey("results", month), func() (any, error) {
		grouped, err := s.grouped.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		flat, err := s.flat.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		inMonth := func(date string) bool { return models.InMonth(date, month) }
		combined := make([]any, 0, len(grouped)+len(flat))
		for _, doc := range grouped {
			combined = append(combined, shapeGrouped(doc, inMonth, now))
		}
		for _, doc := range flat {
			combined = append(combined, shapeFlat(doc, inMonth, now))
		}
		return combined, nil
	})
}

// FetchMonthWindow returns one category's readings from the first of the
// selected date's month up to that date. Scraper mode reads the flat model,
// every other mode the grouped one.
func (s *QueryService) FetchMonthWindow(ctx context.Context, selectedDate, category, mode string) (*MonthWindow, error) {
	to, err := normalizeDate(selectedDate)
	if err != nil {
		return nil, err
	}
	end, _ := time.Parse(models.DateLayout, to)
	from := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).Format(models.DateLayout)
	within := func(date string) bool { return date >= from && date <= to }
	now := s.now()

	data, err := s.cache.fetch(s.keyring.CategoryKey(category, "resultsByMonth", category, selectedDate, mode), func() (any, error) {
		if mode == ScraperMode {
			docs, err := s.flat.FindAllByCategory(ctx, category)
			if err != nil {
				return nil, err
			}
			out := make([]*models.ResultFlat, 0, len(docs))
			for _, doc := range docs {
				out = append(out, shapeFlat(doc, within, now))
			}
			return out, nil
		}

		docs, err := s.grouped.FindAllByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		out := make([]*models.Result, 0, len(docs))
		for _, doc := range docs {
			out = append(out, shapeGrouped(doc, within, now))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &MonthWindow{From: from, To: to, Data: data}, nil
}

// FetchByDate matches both models on category and date in scraper mode.
// Any other mode returns the category's grouped documents whole.
func (s *QueryService) FetchByDate(ctx context.Context, category, date, mode string) (json.RawMessage, error) {
	return s.cache.fetch(s.keyring.CategoryKey(category, "results", "date", category, date, mode), func() (any, error) {
		if mode != ScraperMode {
			return s.grouped.FindAllByCategory(ctx, category)
		}

		grouped, err := s.grouped.FindByCategoryAndDate(ctx, category, date)
		if err != nil {
			return nil, err
		}
		flat, err := s.flat.FindByCategoryAndDate(ctx, category, date)
		if err != nil {
			return nil, err
		}
		combined := make([]any, 0, len(grouped)+len(flat))
		for _, doc := range grouped {
			combined = append(combined, doc)
		}
		for _, doc := range flat {
			combined = append(combined, doc)
		}
		return combined, nil
	})
}

func (s *QueryService) FetchByID(ctx context.Context, id string) (json.RawMessage, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.cache.fetch(s.keyring.GlobalKey("result", "id", id), func() (any, error) {
		return s.grouped.FindByID(ctx, oid)
	})
}

func keepGroups(groups []models.DateGroup, keep func(models.DateGroup) bool) []models.DateGroup {
	out := make([]models.DateGroup, 0, len(groups))
	for _, g := range groups {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

// shapeGrouped restricts a grouped document to the dates accepted by
// window. Today's group loses the readings not yet due and is sorted
// ascending; every other group passes through as stored.
func shapeGrouped(doc *models.Result, window func(string) bool, now time.Time) *models.Result {
	today := now.Format(models.DateLayout)
	c := doc.Clone()
	c.Result = keepGroups(c.Result, func(g models.DateGroup) bool { return window(g.Date) })
	for i := range c.Result {
		if c.Result[i].Date != today {
			continue
		}
		times := models.Elapsed(c.Result[i].Times, now)
		models.SortReadings(times, false)
		c.Result[i].Times = times
	}
	return c
}

// shapeFlat restricts a flat document to the entries accepted by window,
// withholding today's entries not yet due. Stored order is kept.
func shapeFlat(doc *models.ResultFlat, window func(string) bool, now time.Time) *models.ResultFlat {
	today := now.Format(models.DateLayout)
	c := doc.Clone()
	entries := make([]models.FlatEntry, 0, len(c.Result))
	for _, e := range c.Result {
		if !window(e.Date) {
			continue
		}
		if e.Date == today && models.NotYetDue(e.Time, now) {
			continue
		}
		entries = append(entries, e)
	}
	c.Result = entries
	return c
}
