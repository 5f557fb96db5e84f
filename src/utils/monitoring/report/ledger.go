package report

import (
	"go.uber.org/atomic"
)

type LedgerErrors struct {
	ContributionsRejected atomic.Uint64 `json:"contributions_rejected"`
	TreasuryErrors        atomic.Uint64 `json:"treasury"`
	DbErrors              atomic.Uint64 `json:"db"`
}

type LedgerState struct {
	SalesInitialized      atomic.Uint64 `json:"sales_initialized"`
	SalesFinalized        atomic.Uint64 `json:"sales_finalized"`
	ContributionsAccepted atomic.Uint64 `json:"contributions_accepted"`
	TokensSold            atomic.Uint64 `json:"tokens_sold"`
	CurrencyRaised        atomic.Uint64 `json:"currency_raised"`
	EventsDropped         atomic.Uint64 `json:"events_dropped"`

	AverageContributionsPerMinute atomic.Float64 `json:"average_contributions_per_minute"`
}

type LedgerReport struct {
	State  LedgerState  `json:"state"`
	Errors LedgerErrors `json:"errors"`
}
