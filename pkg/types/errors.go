// Standard errors returned across recipebox layers.
package types

import "errors"

// Remote backend errors. Read operations surface them to the caller; write
// operations only log them.
var (
	ErrNetworkFailure   = errors.New("network failure")
	ErrApplicationError = errors.New("backend error")
)

// State errors.
var (
	ErrLookupFailure  = errors.New("recipe not found")
	ErrDuplicateID    = errors.New("duplicate recipe id")
	ErrInvalidSection = errors.New("invalid recipe section")
)

// Shopping list errors.
var (
	ErrDuplicateItem = errors.New("already in list")
	ErrEmptyItem     = errors.New("item text must not be empty")
	ErrItemNotFound  = errors.New("shopping item not found")
	ErrSortModeOff   = errors.New("sort mode is off")
)

// Workspace errors.
var (
	ErrTabNotOpen = errors.New("tab is not open")
)

// Storage errors.
var (
	ErrNotFound        = errors.New("entry not found")
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
