package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reading is a single drawn number at a time of day.
type Reading struct {
	Time   string       `bson:"time" json:"time"`
	Number NumberString `bson:"number" json:"number"`
}

// DateGroup holds every reading of one category for one calendar date.
// Times are unique within a group.
type DateGroup struct {
	Date  string    `bson:"date" json:"date"`
	Times []Reading `bson:"times" json:"times"`
}

// Result is the grouped-by-date document: one per category, one group per date.
type Result struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CategoryName string             `bson:"categoryname" json:"categoryname"`
	Date         string             `bson:"date" json:"date"`
	Number       float64            `bson:"number" json:"number"`
	NextResult   string             `bson:"next_result" json:"next_result"`
	Mode         string             `bson:"mode,omitempty" json:"mode,omitempty"`
	Key          string             `bson:"key,omitempty" json:"key,omitempty"`
	Result       []DateGroup        `bson:"result" json:"result"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FlatEntry is one reading of the per-entry schema written by the ingester.
type FlatEntry struct {
	Time   string       `bson:"time" json:"time"`
	Date   string       `bson:"date" json:"date"`
	Number NumberString `bson:"number" json:"number"`
}

// ResultFlat is the flat per-entry document.
type ResultFlat struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CategoryName string             `bson:"categoryname" json:"categoryname"`
	Date         string             `bson:"date" json:"date"`
	Result       []FlatEntry        `bson:"result" json:"result"`
	Number       NumberString       `bson:"number" json:"number"`
	NextResult   string             `bson:"next_result" json:"next_result"`
	Mode         string             `bson:"mode,omitempty" json:"mode,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Group returns the group for date, or nil.
func (r *Result) Group(date string) *DateGroup {
	for i := range r.Result {
		if r.Result[i].Date == date {
			return &r.Result[i]
		}
	}
	return nil
}

// Clone deep-copies the document so query shaping never touches the original.
func (r *Result) Clone() *Result {
	c := *r
	c.Result = make([]DateGroup, len(r.Result))
	for i, g := range r.Result {
		c.Result[i] = DateGroup{Date: g.Date, Times: slices.Clone(g.Times)}
	}
	return &c
}

// HasTime reports whether a reading at time t already exists in the group.
func (g *DateGroup) HasTime(t string) bool {
	return slices.ContainsFunc(g.Times, func(r Reading) bool { return r.Time == t })
}

// Overlap lists the candidate times already present in the group.
func (g *DateGroup) Overlap(candidates []Reading) []string {
	var dup []string
	for _, c := range candidates {
		if g.HasTime(c.Time) {
			dup = append(dup, c.Time)
		}
	}
	return dup
}

func (f *ResultFlat) Clone() *ResultFlat {
	c := *f
	c.Result = slices.Clone(f.Result)
	return &c
}

// Entry returns the index of the entry at date and time, or -1.
func (f *ResultFlat) Entry(date, t string) int {
	return slices.IndexFunc(f.Result, func(e FlatEntry) bool { return e.Date == date && e.Time == t })
}
