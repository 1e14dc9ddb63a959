package product

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrPermissionDenied = errors.New("product belongs to another supplier")
	ErrNotSupplier      = errors.New("only suppliers can manage products")
	ErrProductHasOrders = errors.New("product has orders and cannot be deleted")

	ErrInvalidName      = errors.New("product name is required")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity cannot be negative")
	ErrInvalidThreshold = errors.New("reorder threshold cannot be negative")
	ErrNothingToUpdate  = errors.New("no product fields to update")
)
