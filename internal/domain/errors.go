package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	ErrMsgUnauthenticated  = "caller identity required"
	ErrMsgPermissionDenied = "permission denied"
	ErrMsgInvalidArgument  = "invalid argument"
	ErrMsgUnitNotFound     = "unit not found"
	ErrMsgItemNotFound     = "item not found"
	ErrMsgStorage          = "storage failure"
)

// Common domain errors.
// These are used consistently across all layers; wrap with
// fmt.Errorf("%w: detail", domain.ErrXxx) for additional context.
var (
	ErrUnauthenticated  = errors.New(ErrMsgUnauthenticated)
	ErrPermissionDenied = errors.New(ErrMsgPermissionDenied)
	ErrInvalidArgument  = errors.New(ErrMsgInvalidArgument)
	ErrUnitNotFound     = errors.New(ErrMsgUnitNotFound)
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrStorage          = errors.New(ErrMsgStorage)
)
