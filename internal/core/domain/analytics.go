package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// LandlordAnalytics is the dashboard summary for one owner.
type LandlordAnalytics struct {
	TotalProperties    int     `json:"total_properties"`
	VerifiedProperties int     `json:"verified_properties"`
	TotalRevenue       float64 `json:"total_revenue"`
	PendingRevenue     float64 `json:"pending_revenue"`
	ActiveEscrows      int     `json:"active_escrows"`
	AverageSafetyScore float64 `json:"average_safety_score"`
}

// ComputeLandlordAnalytics summarises an owner's listings and the escrows on them.
// Money is summed in decimal so large catalogs do not drift.
func ComputeLandlordAnalytics(properties []Property, escrows []EscrowTransaction) LandlordAnalytics {
	out := LandlordAnalytics{TotalProperties: len(properties)}

	safety := 0.0
	for _, p := range properties {
		if p.Verified {
			out.VerifiedProperties++
		}
		safety += p.SafetyScore
	}
	if len(properties) > 0 {
		out.AverageSafetyScore = math.Round(safety/float64(len(properties))*10) / 10
	}

	released, pending := decimal.Zero, decimal.Zero
	for _, e := range escrows {
		amount := decimal.NewFromFloat(e.AmountNGN)
		switch e.Status {
		case EscrowReleased:
			released = released.Add(amount)
		case EscrowDeposited:
			pending = pending.Add(amount)
		}
		if e.Status.Active() {
			out.ActiveEscrows++
		}
	}
	out.TotalRevenue = released.InexactFloat64()
	out.PendingRevenue = pending.InexactFloat64()
	return out
}
