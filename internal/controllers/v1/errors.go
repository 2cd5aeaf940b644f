package v1

import (
	"errors"
	"net/http"

	"github.com/rcbudget/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate HTTP status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")

// Validation errors
var (
	errStatusInvalid             = errors.New("the specified item status is invalid")
	errFundingRestrictionInvalid = errors.New("the specified funding restriction is invalid")
)

// File upload errors
var errNoFilePost = errors.New("you must send a file to this endpoint")
