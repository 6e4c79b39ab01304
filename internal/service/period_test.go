package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodWindows_Week(t *testing.T) {
	now := time.Date(2026, time.August, 20, 15, 30, 0, 0, time.UTC)
	cur, prev := periodWindows("week", now)

	assert.Equal(t, now.AddDate(0, 0, -7), cur.Start)
	assert.Equal(t, now, cur.End)
	assert.Equal(t, now.AddDate(0, 0, -14), prev.Start)
	assert.Equal(t, cur.Start, prev.End)
}

func TestPeriodWindows_Month(t *testing.T) {
	now := time.Date(2026, time.August, 20, 15, 30, 0, 0, time.UTC)
	cur, prev := periodWindows("month", now)

	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), cur.Start)
	assert.Equal(t, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), prev.Start)
	assert.Equal(t, cur.Start, prev.End)
}

func TestPeriodWindows_Quarter(t *testing.T) {
	now := time.Date(2026, time.August, 20, 15, 30, 0, 0, time.UTC)
	cur, prev := periodWindows("quarter", now)

	// August falls in Q3 (Jul–Sep)
	assert.Equal(t, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), cur.Start)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), prev.Start)
}

func TestPeriodWindows_Year(t *testing.T) {
	now := time.Date(2026, time.August, 20, 15, 30, 0, 0, time.UTC)
	cur, prev := periodWindows("year", now)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), cur.Start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), prev.Start)
}

func TestGrowthPercent(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"both zero", 0, 0, 0},
		{"previous zero current positive", 50, 0, 100},
		{"doubling", 200, 100, 100},
		{"decline rounds to 2 decimals", 30, 70, -57.14},
		{"flat", 100, 100, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := growthPercent(decimal.NewFromFloat(tc.current), decimal.NewFromFloat(tc.previous))
			assert.InDelta(t, tc.want, got, 0.001)
		})
	}
}

func TestParseDateRange(t *testing.T) {
	from, to, err := parseDateRange("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), *from)
	// endDate is inclusive: upper bound is the start of the next day
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), *to)

	from, to, err = parseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	_, _, err = parseDateRange("2026-03-31", "2026-03-01")
	assert.Error(t, err)

	_, _, err = parseDateRange("31-03-2026", "2026-04-01")
	assert.Error(t, err)
}
