package report

import (
	"go.uber.org/atomic"
)

type GatewayErrors struct {
	BadRequests    atomic.Uint64 `json:"bad_requests"`
	InternalErrors atomic.Uint64 `json:"internal"`
}

type GatewayState struct {
	RequestsServed         atomic.Uint64 `json:"requests_served"`
	ContributionsSubmitted atomic.Uint64 `json:"contributions_submitted"`
}

type GatewayReport struct {
	State  GatewayState  `json:"state"`
	Errors GatewayErrors `json:"errors"`
}
