package dashboard

import "errors"

var (
	// ErrItemNotFound indicates that the plan item does not exist
	ErrItemNotFound = errors.New("plan item not found")

	// ErrEmptyPlan indicates a plan template without items
	ErrEmptyPlan = errors.New("plan template has no items")
)
