package tier

import "errors"

var (
	ErrInvalidThresholds = errors.New("thresholds must be strictly ascending")
	ErrNotInitialized    = errors.New("tier registry is not initialized")
	ErrAlreadyExists     = errors.New("tier registry already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrBelowMinimum      = errors.New("contribution below attestation minimum")
	ErrOverflow          = errors.New("arithmetic overflow")
)
