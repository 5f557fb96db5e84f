package gateway

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sealstudios/presale/src/presale"
	"github.com/sealstudios/presale/src/tier"
)

var (
	ErrInvalidLimit    = errors.New("invalid limit")
	ErrInvalidMetadata = errors.New("metadata is not valid JSON")
)

// mapStatus translates domain errors into HTTP status codes. Unknown
// errors are internal.
func mapStatus(err error) int {
	switch {
	case errors.Is(err, presale.ErrSaleNotFound),
		errors.Is(err, tier.ErrNotInitialized):
		return http.StatusNotFound

	case errors.Is(err, presale.ErrSaleExists),
		errors.Is(err, tier.ErrAlreadyExists):
		return http.StatusConflict

	case errors.Is(err, presale.ErrUnauthorized),
		errors.Is(err, tier.ErrUnauthorized):
		return http.StatusForbidden

	case errors.Is(err, presale.ErrInvalidTimeRange),
		errors.Is(err, presale.ErrStartTimeInPast),
		errors.Is(err, presale.ErrInvalidMinPurchase),
		errors.Is(err, presale.ErrInvalidMaxPurchase),
		errors.Is(err, presale.ErrInvalidRaiseCap),
		errors.Is(err, presale.ErrInvalidSupply),
		errors.Is(err, presale.ErrInvalidPrice),
		errors.Is(err, tier.ErrInvalidThresholds):
		return http.StatusBadRequest

	case errors.Is(err, presale.ErrSaleInactive),
		errors.Is(err, presale.ErrSaleNotStarted),
		errors.Is(err, presale.ErrSaleEnded),
		errors.Is(err, presale.ErrAmountTooLow),
		errors.Is(err, presale.ErrAmountTooHigh),
		errors.Is(err, presale.ErrCapExceeded),
		errors.Is(err, presale.ErrSupplyExhausted),
		errors.Is(err, presale.ErrContributorCapExceeded),
		errors.Is(err, presale.ErrInsufficientTreasury),
		errors.Is(err, presale.ErrNotWhitelisted),
		errors.Is(err, presale.ErrWhitelistUnverifiable),
		errors.Is(err, presale.ErrOverflow):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// isRetryable recognizes postgres serialization and deadlock failures,
// those commits are safe to retry.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 40001") || strings.Contains(msg, "SQLSTATE 40P01")
}
