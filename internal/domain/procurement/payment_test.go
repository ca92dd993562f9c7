package procurement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func daysAgo(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, -days)
	return &t
}

func daysAhead(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

func TestCalculatePaymentStatusAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(1000)

	tests := []struct {
		name    string
		paid    decimal.Decimal
		dueDate *time.Time
		want    PaymentStatus
	}{
		{"unpaid past due is overdue", decimal.Zero, daysAgo(now, 1), PaymentOverdue},
		{"unpaid with future due date", decimal.Zero, daysAhead(now, 7), PaymentUnpaid},
		{"unpaid without due date", decimal.Zero, nil, PaymentUnpaid},
		{"fully paid", decimal.NewFromInt(1000), daysAhead(now, 7), PaymentPaid},
		{"overpaid counts as paid", decimal.NewFromInt(1200), daysAgo(now, 40), PaymentPaid},
		{"partially paid", decimal.NewFromInt(400), daysAhead(now, 7), PaymentPartiallyPaid},
		{"partially paid past due stays partial", decimal.NewFromInt(400), daysAgo(now, 10), PaymentPartiallyPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePaymentStatusAt(total, tt.paid, tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateAgingCategoryAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate *time.Time
		want    AgingCategory
	}{
		{"no due date", nil, AgingCurrent},
		{"due in the future", daysAhead(now, 14), AgingCurrent},
		{"15 days past due", daysAgo(now, 15), AgingCurrent},
		{"30 days past due still current", daysAgo(now, 30), AgingCurrent},
		{"45 days past due", daysAgo(now, 45), AgingDays3160},
		{"60 days past due", daysAgo(now, 60), AgingDays3160},
		{"75 days past due", daysAgo(now, 75), AgingDays6190},
		{"95 days past due", daysAgo(now, 95), AgingOver90Day},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateAgingCategoryAt(tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}
