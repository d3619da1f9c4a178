package job

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/revops-api/internal/domain/entity"
)

// Financials derived money fields of a job. Never stored.
type Financials struct {
	TotalPaid     decimal.Decimal
	Remaining     decimal.Decimal
	ConfirmedPaid decimal.Decimal
	PendingPaid   decimal.Decimal
}

// ComputeFinancials sums every payment, confirmed or not, and clamps the
// remaining amount at zero on overpayment.
func ComputeFinancials(estimated decimal.Decimal, payments []*entity.Payment) Financials {
	var f Financials
	for _, p := range payments {
		if p == nil {
			continue
		}
		f.TotalPaid = f.TotalPaid.Add(p.Amount)
		if p.ConfirmedByOwner {
			f.ConfirmedPaid = f.ConfirmedPaid.Add(p.Amount)
		} else {
			f.PendingPaid = f.PendingPaid.Add(p.Amount)
		}
	}
	f.Remaining = Remaining(estimated, f.TotalPaid)
	return f
}

// Remaining is max(estimated − paid, 0).
func Remaining(estimated, paid decimal.Decimal) decimal.Decimal {
	r := estimated.Sub(paid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
