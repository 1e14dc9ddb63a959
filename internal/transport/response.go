package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/category"
	"marketplace-be/internal/logger"
	"marketplace-be/internal/order"
	"marketplace-be/internal/product"
	"marketplace-be/internal/rating"
	"marketplace-be/internal/user"

	"go.uber.org/zap"
)

var (
	errBadRequest      = errors.New("malformed request body")
	errInvalidID       = errors.New("invalid id")
	errUnauthenticated = errors.New("authentication required")
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L().Error("failed to encode response", zap.Error(err))
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithServiceError maps a domain error onto its status code. Internal
// failures are logged and reported without detail.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := mapErrorToStatusCode(err)
	log := logger.FromCtx(r.Context()).With(
		zap.String("layer", "transport"),
		zap.String("path", r.URL.Path),
		zap.Int("status", code),
	)

	if code == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		respondWithError(w, code, "internal server error")
		return
	}

	log.Debug("request rejected", zap.Error(err))
	respondWithError(w, code, err.Error())
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, user.ErrProfileNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, rating.ErrSupplierNotFound):
		return http.StatusNotFound

	case errors.Is(err, category.ErrPermissionDenied),
		errors.Is(err, product.ErrPermissionDenied),
		errors.Is(err, product.ErrNotSupplier),
		errors.Is(err, order.ErrPermissionDenied),
		errors.Is(err, rating.ErrPermissionDenied):
		return http.StatusForbidden

	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, rating.ErrAlreadyRated),
		errors.Is(err, rating.ErrOrderNotCompleted),
		errors.Is(err, product.ErrProductHasOrders),
		errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrUsernameExists),
		errors.Is(err, category.ErrCategoryExists):
		return http.StatusConflict

	case errors.Is(err, errBadRequest),
		errors.Is(err, errInvalidID),
		errors.Is(err, auth.ErrInvalidKind),
		errors.Is(err, user.ErrWeakPassword),
		errors.Is(err, user.ErrPasswordTooLong),
		errors.Is(err, user.ErrNothingToUpdate),
		errors.Is(err, category.ErrInvalidName),
		errors.Is(err, product.ErrInvalidName),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidQuantity),
		errors.Is(err, product.ErrInvalidThreshold),
		errors.Is(err, product.ErrNothingToUpdate),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, rating.ErrInvalidScore),
		errors.Is(err, rating.ErrCommentTooLong):
		return http.StatusBadRequest

	case errors.Is(err, errUnauthenticated),
		errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}
