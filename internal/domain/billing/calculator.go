// Package billing holds the pure business rules of the approval/invoicing
// flow: expiry computation, tax totals, and transaction identifiers.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexahost/portal-api/internal/domain/entity"
)

// TaxRate is the fixed GST rate applied to every invoice (18%).
var TaxRate = decimal.NewFromFloat(0.18)

// Expiry day counts per billing cycle. MONTHLY is also the fallback for
// unrecognized cycle values.
const (
	daysYearly    = 365
	daysQuarterly = 90
	daysMonthly   = 31
)

// ExpiryFrom computes the entitlement expiry from the approval time (not the
// request's original creation time).
func ExpiryFrom(now time.Time, billingCycle string) time.Time {
	switch billingCycle {
	case entity.CycleYearly:
		return now.AddDate(0, 0, daysYearly)
	case entity.CycleQuarterly:
		return now.AddDate(0, 0, daysQuarterly)
	default:
		return now.AddDate(0, 0, daysMonthly)
	}
}

// PlanTypeFor maps a billing cycle onto the purchase plan type: YEARLY stays
// YEARLY, everything else (including QUARTERLY) bills as MONTHLY.
func PlanTypeFor(billingCycle string) string {
	if billingCycle == entity.CycleYearly {
		return entity.PlanTypeYearly
	}
	return entity.PlanTypeMonthly
}

// TransactionID derives the unique billing transaction identifier from the
// request id and the creation time.
func TransactionID(requestID int64, at time.Time) string {
	return fmt.Sprintf("REQ%d-%d", requestID, at.UnixMilli())
}

// Totals computes the invoice amounts: subtotal is the raw amount, tax is
// subtotal at the fixed rate, total is their sum. Tax and total are rounded
// to 2 decimal places.
func Totals(amount decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = amount
	tax = amount.Mul(TaxRate).Round(2)
	total = subtotal.Add(tax).Round(2)
	return subtotal, tax, total
}
