package testutil

import (
	"context"
	"resultsd/internal/models"
	"resultsd/internal/repositories/interfaces"
	"slices"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sameCategory(a, b string, insensitive bool) bool {
	if insensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// MemResultStore is an in-memory interfaces.ResultStoreInterface. Each
// call holds the lock for its whole duration, so conditional writes are
// as atomic as their document store counterparts.
type MemResultStore struct {
	mu              sync.Mutex
	docs            []*models.Result
	CaseInsensitive bool
	// Err, when set, is returned by every call.
	Err error
	// Calls counts invocations per method name.
	Calls map[string]int
}

func NewMemResultStore() *MemResultStore {
	return &MemResultStore{Calls: map[string]int{}}
}

func (s *MemResultStore) enter(op string) error {
	s.mu.Lock()
	s.Calls[op]++
	return s.Err
}

func (s *MemResultStore) byCategory(category string) *models.Result {
	for _, d := range s.docs {
		if sameCategory(d.CategoryName, category, s.CaseInsensitive) {
			return d
		}
	}
	return nil
}

func (s *MemResultStore) byID(id primitive.ObjectID) *models.Result {
	for _, d := range s.docs {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Seed stores doc as is, assigning an id when it has none.
func (s *MemResultStore) Seed(doc *models.Result) *models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	s.docs = append(s.docs, doc.Clone())
	return doc
}

// Snapshot returns a copy of the category's document, or nil.
func (s *MemResultStore) Snapshot(category string) *models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.byCategory(category); d != nil {
		return d.Clone()
	}
	return nil
}

func (s *MemResultStore) Insert(_ context.Context, doc *models.Result) error {
	if err := s.enter("Insert"); err != nil {
		s.mu.Unlock()
		return err
	}
	defer s.mu.Unlock()
	if s.byCategory(doc.CategoryName) != nil {
		return models.ErrAlreadyExists
	}
	now := time.Now()
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt, doc.UpdatedAt = now, now
	s.docs = append(s.docs, doc.Clone())
	return nil
}

func (s *MemResultStore) PushTimes(_ context.Context, category, date string, entries []models.Reading, nextResult string) (*models.Result, error) {
	if err := s.enter("PushTimes"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	d := s.byCategory(category)
	if d == nil {
		return nil, models.ErrNotMatched
	}
	g := d.Group(date)
	if g == nil || len(g.Overlap(entries)) > 0 {
		return nil, models.ErrNotMatched
	}
	g.Times = append(g.Times, entries...)
	d.NextResult = nextResult
	return d.Clone(), nil
}

func (s *MemResultStore) PushDateGroup(_ context.Context, category string, group models.DateGroup, nextResult string) (*models.Result, error) {
	if err := s.enter("PushDateGroup"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	d := s.byCategory(category)
	if d == nil || d.Group(group.Date) != nil {
		return nil, models.ErrNotMatched
	}
	d.Result = append(d.Result, models.DateGroup{Date: group.Date, Times: slices.Clone(group.Times)})
	d.NextResult = nextResult
	return d.Clone(), nil
}

func (s *MemResultStore) FindByCategory(_ context.Context, category string) (*models.Result, error) {
	if err := s.enter("FindByCategory"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	if d := s.byCategory(category); d != nil {
		return d.Clone(), nil
	}
	return nil, models.ErrNotFound
}

func (s *MemResultStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Result, error) {
	if err := s.enter("FindByID"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	if d := s.byID(id); d != nil {
		return d.Clone(), nil
	}
	return nil, models.ErrNotFound
}

// newest-first over insertion order
func (s *MemResultStore) filter(keep func(*models.Result) bool) []*models.Result {
	out := make([]*models.Result, 0)
	for i := len(s.docs) - 1; i >= 0; i-- {
		if keep(s.docs[i]) {
			out = append(out, s.docs[i].Clone())
		}
	}
	return out
}

func (s *MemResultStore) FindAll(_ context.Context) ([]*models.Result, error) {
	if err := s.enter("FindAll"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	return s.filter(func(*models.Result) bool { return true }), nil
}

func (s *MemResultStore) FindAllByCategory(_ context.Context, category string) ([]*models.Result, error) {
	if err := s.enter("FindAllByCategory"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	return s.filter(func(d *models.Result) bool { return sameCategory(d.CategoryName, category, s.CaseInsensitive) }), nil
}

func (s *MemResultStore) FindByCategoryAndDate(_ context.Context, category, date string) ([]*models.Result, error) {
	if err := s.enter("FindByCategoryAndDate"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	return s.filter(func(d *models.Result) bool {
		return sameCategory(d.CategoryName, category, s.CaseInsensitive) && d.Date == date
	}), nil
}

func (s *MemResultStore) FindWithGroup(_ context.Context, date string) ([]*models.Result, error) {
	if err := s.enter("FindWithGroup"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	out := s.filter(func(d *models.Result) bool { return d.Group(date) != nil })
	for _, d := range out {
		g := *d.Group(date)
		d.Result = []models.DateGroup{g}
	}
	return out, nil
}

func (s *MemResultStore) entry(id primitive.ObjectID, date, t string) (*models.Result, *models.DateGroup) {
	d := s.byID(id)
	if d == nil {
		return nil, nil
	}
	g := d.Group(date)
	if g == nil || !g.HasTime(t) {
		return nil, nil
	}
	return d, g
}

func (s *MemResultStore) SetTimeNumber(_ context.Context, id primitive.ObjectID, date, t string, number models.NumberString, nextResult string) (*models.Result, error) {
	if err := s.enter("SetTimeNumber"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	d, g := s.entry(id, date, t)
	if d == nil {
		return nil, models.ErrNotFound
	}
	for i := range g.Times {
		if g.Times[i].Time == t {
			g.Times[i].Number = number
		}
	}
	if nextResult != "" {
		d.NextResult = nextResult
	}
	return d.Clone(), nil
}

func (s *MemResultStore) PullTime(_ context.Context, id primitive.ObjectID, date, t string) (*models.Result, error) {
	if err := s.enter("PullTime"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	d, g := s.entry(id, date, t)
	if d == nil {
		return nil, models.ErrNotFound
	}
	g.Times = slices.DeleteFunc(g.Times, func(r models.Reading) bool { return r.Time == t })
	return d.Clone(), nil
}

func (s *MemResultStore) EnsureIndexes(_ context.Context) error {
	err := s.enter("EnsureIndexes")
	s.mu.Unlock()
	return err
}

var _ interfaces.ResultStoreInterface = (*MemResultStore)(nil)

// MemFlatStore is an in-memory interfaces.FlatResultStoreInterface.
type MemFlatStore struct {
	mu              sync.Mutex
	docs            []*models.ResultFlat
	CaseInsensitive bool
	Err             error
}

func NewMemFlatStore() *MemFlatStore {
	return &MemFlatStore{CaseInsensitive: true}
}

func (s *MemFlatStore) byCategory(category string) *models.ResultFlat {
	for _, d := range s.docs {
		if sameCategory(d.CategoryName, category, s.CaseInsensitive) {
			return d
		}
	}
	return nil
}

func (s *MemFlatStore) Seed(doc *models.ResultFlat) *models.ResultFlat {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	s.docs = append(s.docs, doc.Clone())
	return doc
}

func (s *MemFlatStore) Snapshot(category string) *models.ResultFlat {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.byCategory(category); d != nil {
		return d.Clone()
	}
	return nil
}

func applyRoot(d *models.ResultFlat, root interfaces.FlatRoot) {
	d.Number = root.Number
	d.NextResult = root.NextResult
	d.Mode = root.Mode
	d.Date = root.Date
}

func (s *MemFlatStore) SetEntryNumber(_ context.Context, category string, entry models.FlatEntry, root interfaces.FlatRoot) (*models.ResultFlat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	d := s.byCategory(category)
	if d == nil {
		return nil, models.ErrNotMatched
	}
	i := d.Entry(entry.Date, entry.Time)
	if i < 0 {
		return nil, models.ErrNotMatched
	}
	d.Result[i].Number = entry.Number
	applyRoot(d, root)
	return d.Clone(), nil
}

func (s *MemFlatStore) PushEntry(_ context.Context, category string, entry models.FlatEntry, root interfaces.FlatRoot) (*models.ResultFlat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	d := s.byCategory(category)
	if d == nil || d.Entry(entry.Date, entry.Time) >= 0 {
		return nil, models.ErrNotMatched
	}
	d.Result = append(d.Result, entry)
	applyRoot(d, root)
	return d.Clone(), nil
}

func (s *MemFlatStore) Insert(_ context.Context, doc *models.ResultFlat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.byCategory(doc.CategoryName) != nil {
		return models.ErrAlreadyExists
	}
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now()
	s.docs = append(s.docs, doc.Clone())
	return nil
}

func (s *MemFlatStore) filter(keep func(*models.ResultFlat) bool) ([]*models.ResultFlat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*models.ResultFlat, 0)
	for i := len(s.docs) - 1; i >= 0; i-- {
		if keep(s.docs[i]) {
			out = append(out, s.docs[i].Clone())
		}
	}
	return out, nil
}

func (s *MemFlatStore) FindAll(_ context.Context) ([]*models.ResultFlat, error) {
	return s.filter(func(*models.ResultFlat) bool { return true })
}

func (s *MemFlatStore) FindAllByCategory(_ context.Context, category string) ([]*models.ResultFlat, error) {
	return s.filter(func(d *models.ResultFlat) bool { return sameCategory(d.CategoryName, category, s.CaseInsensitive) })
}

func (s *MemFlatStore) FindByCategoryAndDate(_ context.Context, category, date string) ([]*models.ResultFlat, error) {
	return s.filter(func(d *models.ResultFlat) bool {
		return sameCategory(d.CategoryName, category, s.CaseInsensitive) && d.Date == date
	})
}

func (s *MemFlatStore) EnsureIndexes(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Err
}

var _ interfaces.FlatResultStoreInterface = (*MemFlatStore)(nil)

// MemCategoryStore is an in-memory interfaces.CategoryStoreInterface.
type MemCategoryStore struct {
	mu   sync.Mutex
	docs []*models.CategoryKey
	Err  error
}

func (s *MemCategoryStore) Insert(_ context.Context, doc *models.CategoryKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, d := range s.docs {
		if d.Key == doc.Key || d.CategoryName == doc.CategoryName {
			return models.ErrAlreadyExists
		}
	}
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	c := *doc
	s.docs = append(s.docs, &c)
	return nil
}

func (s *MemCategoryStore) FindAll(_ context.Context) ([]*models.CategoryKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*models.CategoryKey, 0, len(s.docs))
	for _, d := range s.docs {
		c := *d
		out = append(out, &c)
	}
	return out, nil
}

func (s *MemCategoryStore) EnsureIndexes(_ context.Context) error { return s.Err }

var _ interfaces.CategoryStoreInterface = (*MemCategoryStore)(nil)

// MemUserStore is an in-memory interfaces.UserStoreInterface.
type MemUserStore struct {
	mu    sync.Mutex
	users []*models.User
	Err   error
}

func (s *MemUserStore) find(match func(*models.User) bool) *models.User {
	for _, u := range s.users {
		if match(u) {
			return u
		}
	}
	return nil
}

func (s *MemUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.find(func(u *models.User) bool { return u.Email == user.Email }) != nil {
		return models.ErrAlreadyExists
	}
	user.ID = primitive.NewObjectID()
	c := *user
	s.users = append(s.users, &c)
	return nil
}

func (s *MemUserStore) lookup(match func(*models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u := s.find(match)
	if u == nil {
		return nil, models.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (s *MemUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.lookup(func(u *models.User) bool { return u.Email == email })
}

func (s *MemUserStore) FindByEmailAndOTP(_ context.Context, email, otp string) (*models.User, error) {
	return s.lookup(func(u *models.User) bool { return u.Email == email && u.OTP != "" && u.OTP == otp })
}

func (s *MemUserStore) update(id primitive.ObjectID, fn func(*models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u := s.find(func(u *models.User) bool { return u.ID == id })
	if u == nil {
		return models.ErrNotFound
	}
	fn(u)
	return nil
}

func (s *MemUserStore) SetOTP(_ context.Context, id primitive.ObjectID, otp string, expiry time.Time) error {
	return s.update(id, func(u *models.User) {
		u.OTP = otp
		u.OTPExpiry = &expiry
		u.Authenticated = false
	})
}

func (s *MemUserStore) Activate(_ context.Context, id primitive.ObjectID) error {
	return s.update(id, func(u *models.User) {
		u.Authenticated = true
		u.OTP = ""
		u.OTPExpiry = nil
	})
}

func (s *MemUserStore) SetPassword(_ context.Context, id primitive.ObjectID, hash string) error {
	return s.update(id, func(u *models.User) { u.Password = hash })
}

func (s *MemUserStore) EnsureIndexes(_ context.Context) error { return s.Err }

var _ interfaces.UserStoreInterface = (*MemUserStore)(nil)
