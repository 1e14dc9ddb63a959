package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrInvalidName      = errors.New("category name is required")
	ErrPermissionDenied = errors.New("only suppliers can manage categories")

	PgUniqueViolation = "23505"
)
