package shopping

import "errors"

// Domain errors for shopping-list operations

var (
	// ErrItemNotOwned is returned when a toggle matches no row for the
	// caller: either the item does not exist or it belongs to another
	// user. The two cases are deliberately indistinguishable.
	ErrItemNotOwned = errors.New("item not found or not authorized")
)
