package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors raised by model hooks.
var (
	ErrAllocationAmountNegative = errors.New("allocation amounts must not be negative")
	ErrAllocationAmountZero     = errors.New("at least one allocation amount must be positive")
	ErrFileSizeMismatch         = errors.New("the declared file size does not match the uploaded content")
)

// Uniqueness errors, translated from database constraint violations by the
// create and update callbacks.
var (
	ErrResponsibilityCentreNameNotUnique = errors.New("the responsibility centre name is already in use")
	ErrFiscalYearNameNotUnique           = errors.New("the fiscal year name is already in use for this responsibility centre")
	ErrMoneyTypeCodeNotUnique            = errors.New("the money type code is already in use for this fiscal year")
	ErrCategoryNameNotUnique             = errors.New("the category name is already in use for this fiscal year")
	ErrSpendingCategoryNameNotUnique     = errors.New("the spending category name is already in use for this fiscal year")
	ErrFundingItemNameNotUnique          = errors.New("the funding item name is already in use for this fiscal year")
	ErrSpendingItemNameNotUnique         = errors.New("the spending item name is already in use for this fiscal year")
	ErrProcurementItemNameNotUnique      = errors.New("the procurement item name is already in use for this fiscal year")
	ErrTrainingItemNameNotUnique         = errors.New("the training item name is already in use for this fiscal year")
	ErrTravelItemNameNotUnique           = errors.New("the travel item name is already in use for this fiscal year")
)
