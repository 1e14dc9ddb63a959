package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"marketplace-be/internal/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it. On failure the response
// has already been written.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		msg := errBadRequest.Error()
		if !errors.Is(err, io.EOF) {
			msg = fmt.Sprintf("%s: %v", msg, err)
		}
		respondWithError(w, http.StatusBadRequest, msg)
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respondWithJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "validation failed",
				Details: formatValidationErrors(verrs),
			})
			return false
		}
		logger.FromCtx(r.Context()).Error("unexpected validation error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return false
	}
	return true
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			details[field] = "is required"
		case "email":
			details[field] = "must be a valid email"
		case "min", "gte":
			details[field] = "must be at least " + fe.Param()
		case "max", "lte":
			details[field] = "must be at most " + fe.Param()
		case "oneof":
			details[field] = "must be one of: " + fe.Param()
		default:
			details[field] = "failed on " + fe.Tag()
		}
	}
	return details
}
