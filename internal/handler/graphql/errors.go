package graphql

import (
	"errors"
	"net/http"

	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
)

// resolverError carries a machine-readable code into the GraphQL error
// extensions alongside the human message.
type resolverError struct {
	message string
	code    string
}

func (e *resolverError) Error() string { return e.message }

// Extensions implements gqlerrors.ExtendedError.
func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// wrapError translates service errors into resolver errors. Internal errors
// are flattened to a generic message so no implementation detail leaks into
// the response; the transport logs the original.
func wrapError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status == http.StatusInternalServerError {
			return &resolverError{message: "an internal error occurred", code: appErr.Code}
		}
		return &resolverError{message: appErr.Message, code: appErr.Code}
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return &resolverError{message: "resource not found", code: "NOT_FOUND"}
	case errors.Is(err, apperrors.ErrAlreadyExists):
		return &resolverError{message: "resource already exists", code: "ALREADY_EXISTS"}
	case errors.Is(err, apperrors.ErrUnauthorized):
		return &resolverError{message: err.Error(), code: "UNAUTHORIZED"}
	case errors.Is(err, apperrors.ErrForbidden):
		return &resolverError{message: err.Error(), code: "FORBIDDEN"}
	case errors.Is(err, apperrors.ErrConflict):
		return &resolverError{message: err.Error(), code: "CONFLICT"}
	case errors.Is(err, apperrors.ErrInvalidInput):
		return &resolverError{message: err.Error(), code: "INVALID_INPUT"}
	default:
		return &resolverError{message: "an internal error occurred", code: "INTERNAL_ERROR"}
	}
}
