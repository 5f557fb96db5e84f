package presale

import "errors"

// Every rejection is a distinct, named outcome. Nothing is retried here,
// the caller decides whether to resubmit.
var (
	// Initialization parameter validation
	ErrInvalidTimeRange   = errors.New("invalid time range")
	ErrStartTimeInPast    = errors.New("start time cannot be in the past")
	ErrInvalidMinPurchase = errors.New("invalid minimum purchase amount")
	ErrInvalidMaxPurchase = errors.New("invalid maximum purchase amount")
	ErrInvalidRaiseCap    = errors.New("invalid raise cap")
	ErrInvalidSupply      = errors.New("invalid supply")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrSaleExists         = errors.New("sale already exists")

	// Window and activity
	ErrSaleNotFound   = errors.New("sale not found")
	ErrSaleInactive   = errors.New("sale is not active")
	ErrSaleNotStarted = errors.New("sale has not started yet")
	ErrSaleEnded      = errors.New("sale has ended")

	// Bounds
	ErrAmountTooLow           = errors.New("contribution amount is too low")
	ErrAmountTooHigh          = errors.New("contribution amount is too high")
	ErrCapExceeded            = errors.New("sale cap exceeded")
	ErrSupplyExhausted        = errors.New("supply exhausted")
	ErrContributorCapExceeded = errors.New("contributor cap exceeded")
	ErrInsufficientTreasury   = errors.New("insufficient treasury balance")

	// Whitelist membership proofs are not verified unless a verifier is
	// plugged in. An enabled whitelist without a verifier rejects loudly
	// instead of silently skipping the check.
	ErrNotWhitelisted        = errors.New("not whitelisted")
	ErrWhitelistUnverifiable = errors.New("whitelist enforcement disabled: no verifier configured")

	// Arithmetic
	ErrOverflow = errors.New("arithmetic overflow")

	// Administration
	ErrUnauthorized = errors.New("unauthorized")
)
