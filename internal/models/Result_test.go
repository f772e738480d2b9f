package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_CloneIsDeep(t *testing.T) {
	doc := &Result{
		CategoryName: "Minidiswar",
		Result:       []DateGroup{{Date: "2025-10-15", Times: []Reading{{Time: "09:00 AM", Number: "12"}}}},
	}
	c := doc.Clone()
	c.Result[0].Times[0].Number = "99"
	c.Result[0].Times = append(c.Result[0].Times, Reading{Time: "09:15 AM"})

	assert.Equal(t, NumberString("12"), doc.Result[0].Times[0].Number)
	assert.Len(t, doc.Result[0].Times, 1)
}

func TestDateGroup_Overlap(t *testing.T) {
	g := DateGroup{Date: "2025-10-15", Times: []Reading{{Time: "09:00 AM"}, {Time: "09:15 AM"}}}

	assert.Equal(t, []string{"09:15 AM"}, g.Overlap([]Reading{{Time: "09:15 AM"}, {Time: "09:30 AM"}}))
	assert.Empty(t, g.Overlap([]Reading{{Time: "10:00 AM"}}))
}

func TestResult_Group(t *testing.T) {
	doc := &Result{Result: []DateGroup{{Date: "2025-10-14"}, {Date: "2025-10-15"}}}
	assert.Equal(t, "2025-10-15", doc.Group("2025-10-15").Date)
	assert.Nil(t, doc.Group("2025-10-16"))
}

func TestResultFlat_Entry(t *testing.T) {
	doc := &ResultFlat{Result: []FlatEntry{
		{Date: "2025-10-15", Time: "09:00 AM"},
		{Date: "2025-10-16", Time: "09:00 AM"},
	}}
	assert.Equal(t, 1, doc.Entry("2025-10-16", "09:00 AM"))
	assert.Equal(t, -1, doc.Entry("2025-10-16", "09:15 AM"))
}

func TestDuplicateTimeError(t *testing.T) {
	err := fmt.Errorf("upsert: %w", &DuplicateTimeError{Times: []string{"09:00 AM", "09:15 AM"}})

	var dup *DuplicateTimeError
	assert.True(t, errors.As(err, &dup))
	assert.ErrorIs(t, err, ErrDuplicateTime)
	assert.Contains(t, err.Error(), "09:00 AM, 09:15 AM")
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(fmt.Errorf("x: %w", ErrNotFound)))
	assert.True(t, IsDomainError(&DuplicateTimeError{}))
	assert.False(t, IsDomainError(ErrStoreUnavailable))
	assert.False(t, IsDomainError(errors.New("socket closed")))
}
