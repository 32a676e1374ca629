package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrDatabaseError          = errors.New("database error")
	ErrTripNotFound           = errors.New("trip not found")
	ErrAccountNotFound        = errors.New("account not found")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUpstreamUnavailable    = errors.New("upstream service unavailable")
	ErrInsufficientCandidates = errors.New("could not reach target landmark count")
	ErrGapThresholdExceeded   = errors.New("timeline gap exceeds threshold")
	ErrDuplicateLandmark      = errors.New("landmark already placed in trip")
	ErrNoPlaceMatch           = errors.New("no matching place found")
)
