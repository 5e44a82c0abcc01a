package loan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

func TestInterest(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		months    int
		want      string
	}{
		{"half year at 12.5%", "100000", "12.5", 6, "6250.00"},
		{"full year", "50000", "10", 12, "5000.00"},
		{"repeating fraction rounds to cents", "1000", "12.5", 7, "72.92"},
		{"zero rate", "1000", "0", 12, "0"},
		{"missing duration", "1000", "12", 0, "0"},
		{"half cent rounds to even", "1", "1.5", 1, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interest(d(tt.principal), d(tt.rate), tt.months)
			assert.True(t, got.Equal(d(tt.want)), "Interest = %s, want %s", got, tt.want)
		})
	}
}

func TestTotalPayable(t *testing.T) {
	got := TotalPayable(d("100000"), d("12.5"), 6)
	assert.Equal(t, "106250.00", got.StringFixed(2))
}

func TestTotalPayable_StableAcrossCalls(t *testing.T) {
	first := TotalPayable(d("3333.33"), d("17.35"), 11)
	for i := 0; i < 100; i++ {
		require.True(t, first.Equal(TotalPayable(d("3333.33"), d("17.35"), 11)))
	}
	assert.True(t, first.Equal(first.Round(2)), "total must be whole cents, got %s", first)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{"leap february", day(2024, time.January, 31), 1, day(2024, time.February, 29)},
		{"plain february", day(2023, time.January, 31), 1, day(2023, time.February, 28)},
		{"thirteen months across years", day(2023, time.December, 15), 13, day(2025, time.January, 15)},
		{"thirty day month", day(2024, time.March, 31), 1, day(2024, time.April, 30)},
		{"year from leap day", day(2024, time.February, 29), 12, day(2025, time.February, 28)},
		{"december rollover", day(2024, time.November, 30), 1, day(2024, time.December, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonthsClamped(tt.from, tt.months))
		})
	}
}

func TestDueDate_FallsBackToOneYear(t *testing.T) {
	assert.Equal(t, day(2025, time.March, 10), DueDate(day(2024, time.March, 10), 0))
	assert.Equal(t, day(2024, time.February, 29), DueDate(day(2024, time.January, 31), 1))
}

func TestDueDate_IgnoresClock(t *testing.T) {
	at := time.Date(2024, time.January, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, day(2024, time.February, 29), DueDate(at, 1))
}

func TestOpen(t *testing.T) {
	l := Open(42, d("100000"), d("12.5"), 6, day(2024, time.January, 31))

	assert.Equal(t, uint64(42), l.ApplicationID)
	assert.Equal(t, StatusActive, l.Status)
	assert.Equal(t, "106250.00", l.TotalPayable.StringFixed(2))
	assert.True(t, l.Balance.Equal(l.TotalPayable), "balance seeds with principal plus interest")
	assert.Equal(t, day(2024, time.July, 31), l.DueDate)
	assert.True(t, l.TotalAmount().Equal(l.TotalPayable))
	assert.Equal(t, "6250.00", l.InterestAmount().StringFixed(2))
}
