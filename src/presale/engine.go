package presale

import (
	"time"

	"github.com/sealstudios/presale/src/utils/model"
)

// WhitelistVerifier checks a membership proof against the stored
// commitment root. No implementation ships with the service, the gap is
// surfaced through ErrWhitelistUnverifiable when a whitelist is enabled
// without one.
type WhitelistVerifier interface {
	Verify(root []byte, contributor string, proof [][]byte) bool
}

// evaluation is the outcome of checking one contribution against a
// consistent snapshot of the sale and participant records. Nothing is
// mutated here, the caller commits the new totals in the same atomic
// invocation that produced the snapshot.
type evaluation struct {
	Tokens       uint64
	BonusPercent uint64

	NewTotalRaised       uint64
	NewTokensSold        uint64
	NewParticipantTotal  uint64
	NewParticipantTokens uint64

	// True when this is the participant's first accepted contribution
	FirstContribution bool
}

// evaluate runs the contribution checks in their canonical order: activity,
// window, bounds, whitelist, raise cap, conversion, supply, contributor cap.
// Each violated precondition yields its distinct error and no result.
func evaluate(
	sale *model.Sale,
	participant *model.Participant,
	contributor string,
	amount uint64,
	proof [][]byte,
	now time.Time,
	schedule *BonusSchedule,
	verifier WhitelistVerifier,
) (result *evaluation, err error) {
	if !sale.IsActive {
		return nil, ErrSaleInactive
	}

	ts := now.Unix()
	if ts < sale.StartTime {
		return nil, ErrSaleNotStarted
	}
	if ts > sale.EndTime {
		return nil, ErrSaleEnded
	}

	if amount < sale.MinPurchase {
		return nil, ErrAmountTooLow
	}
	if amount > sale.MaxPurchase {
		return nil, ErrAmountTooHigh
	}

	if sale.WhitelistEnabled {
		if verifier == nil {
			return nil, ErrWhitelistUnverifiable
		}
		if !verifier.Verify(sale.WhitelistRoot, contributor, proof) {
			return nil, ErrNotWhitelisted
		}
	}

	result = new(evaluation)

	result.NewTotalRaised, err = checkedAdd(sale.TotalRaised, amount)
	if err != nil {
		return nil, err
	}
	if result.NewTotalRaised > sale.TotalRaiseCap {
		return nil, ErrCapExceeded
	}

	result.BonusPercent = schedule.Percent(amount)
	result.Tokens, err = ConvertTokens(amount, sale.PricePerToken, result.BonusPercent)
	if err != nil {
		return nil, err
	}

	result.NewTokensSold, err = checkedAdd(sale.TokensSold, result.Tokens)
	if err != nil {
		return nil, err
	}
	if result.NewTokensSold > sale.PresaleSupply {
		return nil, ErrSupplyExhausted
	}

	var contributed, received uint64
	if participant != nil {
		contributed = participant.TotalContributed
		received = participant.TotalTokensReceived
	}
	result.FirstContribution = contributed == 0

	result.NewParticipantTotal, err = checkedAdd(contributed, amount)
	if err != nil {
		return nil, err
	}
	if result.NewParticipantTotal > sale.MaxPurchase {
		return nil, ErrContributorCapExceeded
	}

	result.NewParticipantTokens, err = checkedAdd(received, result.Tokens)
	if err != nil {
		return nil, err
	}

	return
}

// validateParams checks the initialization invariants. Rejected parameters
// mean no sale record is created at all.
func validateParams(sale *model.Sale, now time.Time) error {
	if sale.EndTime <= sale.StartTime {
		return ErrInvalidTimeRange
	}
	if sale.StartTime < now.Unix() {
		return ErrStartTimeInPast
	}
	if sale.MinPurchase == 0 {
		return ErrInvalidMinPurchase
	}
	if sale.MaxPurchase < sale.MinPurchase {
		return ErrInvalidMaxPurchase
	}
	if sale.TotalRaiseCap == 0 {
		return ErrInvalidRaiseCap
	}
	if sale.PresaleSupply == 0 {
		return ErrInvalidSupply
	}
	if sale.PricePerToken == 0 {
		return ErrInvalidPrice
	}
	return nil
}
