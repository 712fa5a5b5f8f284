package domain

import (
	"errors"
	"fmt"
)

var (
	// Validation errors. ErrInvalidAmount and ErrInvalidPeriodKey chain
	// onto ErrValidation so callers can match either the specific cause
	// or the family.
	ErrValidation       = errors.New("invalid obligation record")
	ErrScheduling       = errors.New("invalid installment parameters")
	ErrInvalidAmount    = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrInvalidPeriodKey = fmt.Errorf("%w: invalid period key", ErrValidation)

	// Forecast errors
	ErrInsufficientData = errors.New("not enough history to fit a trend")

	// Snapshot errors
	ErrPartialData = errors.New("snapshot is incomplete")

	// Lookup errors
	ErrObligationNotFound  = errors.New("obligation not found")
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrGoalNotFound        = errors.New("goal not found")

	// State errors
	ErrAlreadyPaid = errors.New("obligation already paid")
)
