package domain_test

import (
	"testing"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		from, to string
		want     string
	}{
		{"kg to lb", "100", "kg", "lb", "220.46226218"},
		{"lb to kg", "220.46226218", "lb", "kg", "100"},
		{"same unit kg", "80", "kg", "kg", "80"},
		{"same unit lb", "180", "lb", "lb", "180"},
		{"unknown units", "50", "st", "kg", "50"},
		{"zero value", "0", "kg", "lb", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ConvertWeight(dec(tc.value), tc.from, tc.to)
			diff := got.Sub(dec(tc.want)).Abs()
			assert.Truef(t, diff.LessThan(decimal.New(1, -3)),
				"ConvertWeight(%s, %q, %q) = %s; want %s", tc.value, tc.from, tc.to, got, tc.want)
		})
	}
}

func TestDayBounds(t *testing.T) {
	start, end, err := domain.DayBounds("2026-03-14")
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-14", domain.LocalDay(start))
	assert.Equal(t, "2026-03-15", domain.LocalDay(end))

	_, _, err = domain.DayBounds("14/03/2026")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
