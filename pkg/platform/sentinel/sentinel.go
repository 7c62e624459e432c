package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Clients and stores return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about external resources, not validation
// failures:
// - ErrTimeout: the resource did not answer within its deadline
// - ErrUnavailable: the resource is unreachable or answered with a fault
// - ErrNotFound: the entity does not exist in the store
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrTimeout     = errors.New("timeout")
	ErrUnavailable = errors.New("unavailable")
	ErrNotFound    = errors.New("not found")
)
