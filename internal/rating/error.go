package rating

import "errors"

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrOrderNotCompleted = errors.New("order is not completed")
	ErrInvalidScore      = errors.New("score must be between 1 and 5")
	ErrCommentTooLong    = errors.New("comment must be at most 500 characters")
	ErrAlreadyRated      = errors.New("order already rated")
	ErrSupplierNotFound  = errors.New("supplier not found")
)

const (
	PgUniqueViolation = "23505"

	ratingsOrderKey = "ratings_order_key"
)
