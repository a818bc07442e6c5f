package day

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyMatchesDateString(t *testing.T) {
	d := Of(time.Date(2024, time.January, 5, 14, 30, 0, 0, time.Local))

	// Same shape as JavaScript's Date.toDateString().
	assert.Equal(t, "Fri Jan 05 2024", d.Key())
}

func TestNextPrevRoundTrip(t *testing.T) {
	d := Of(time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local))

	assert.Equal(t, d.Key(), d.Next().Prev().Key())
	assert.Equal(t, d.Key(), d.Prev().Next().Key())
}

func TestNextAcrossMonthBoundary(t *testing.T) {
	jan31 := Of(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.Local))

	feb1 := jan31.Next()
	assert.Equal(t, "Thu Feb 01 2024", feb1.Key())
	assert.Equal(t, jan31.Key(), feb1.Prev().Key())
}

func TestPrevAcrossYearBoundary(t *testing.T) {
	jan1 := Of(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local))

	dec31 := jan1.Prev()
	assert.Equal(t, "Sun Dec 31 2023", dec31.Key())
	assert.Equal(t, jan1.Key(), dec31.Next().Key())
}

func TestParseRoundTrip(t *testing.T) {
	d := Of(time.Date(2023, time.November, 15, 0, 0, 0, 0, time.Local))

	parsed, err := Parse(d.Key())
	require.NoError(t, err)
	assert.Equal(t, d.Key(), parsed.Key())
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not a day")
	assert.Error(t, err)
}

func TestIsToday(t *testing.T) {
	assert.True(t, Today().IsToday())
	assert.False(t, Today().Next().IsToday())
}
