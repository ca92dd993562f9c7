package procurement

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from persisted totals at read time. It is never
// stored, so it cannot go stale when payments or due dates change.
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "UNPAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentOverdue       PaymentStatus = "OVERDUE"
)

// AgingCategory classifies an outstanding payment by days past its due date
type AgingCategory string

const (
	AgingCurrent   AgingCategory = "CURRENT"
	AgingDays3160  AgingCategory = "DAYS_31_60"
	AgingDays6190  AgingCategory = "DAYS_61_90"
	AgingOver90Day AgingCategory = "OVER_90"
)

// CalculatePaymentStatus derives the payment status from the order total,
// the amount paid so far, and the optional due date.
func CalculatePaymentStatus(total, paid decimal.Decimal, dueDate *time.Time) PaymentStatus {
	return CalculatePaymentStatusAt(total, paid, dueDate, time.Now())
}

// CalculatePaymentStatusAt is the clock-injected variant used by reports and
// tests.
func CalculatePaymentStatusAt(total, paid decimal.Decimal, dueDate *time.Time, now time.Time) PaymentStatus {
	if paid.GreaterThanOrEqual(total) && total.GreaterThan(decimal.Zero) {
		return PaymentPaid
	}
	if paid.LessThanOrEqual(decimal.Zero) {
		if dueDate != nil && dueDate.Before(now) {
			return PaymentOverdue
		}
		return PaymentUnpaid
	}
	return PaymentPartiallyPaid
}

// CalculateAgingCategory buckets an outstanding payment at 30/60/90 days past
// due. A missing due date always classifies as CURRENT.
func CalculateAgingCategory(dueDate *time.Time) AgingCategory {
	return CalculateAgingCategoryAt(dueDate, time.Now())
}

// CalculateAgingCategoryAt is the clock-injected variant.
func CalculateAgingCategoryAt(dueDate *time.Time, now time.Time) AgingCategory {
	if dueDate == nil {
		return AgingCurrent
	}
	daysPastDue := int(now.Sub(*dueDate).Hours() / 24)
	switch {
	case daysPastDue <= 30:
		return AgingCurrent
	case daysPastDue <= 60:
		return AgingDays3160
	case daysPastDue <= 90:
		return AgingDays6190
	default:
		return AgingOver90Day
	}
}
