package domain

import "errors"

var (
	// Input errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAmount = errors.New("amount must not be negative")

	// Lookup errors
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrOrderNotFound        = errors.New("payment order not found")

	// Reconciliation errors
	ErrInvalidSignature = errors.New("notification signature mismatch")

	// Split errors
	ErrNoParticipants = errors.New("expense has no participants")

	// Concurrency errors
	ErrConflict = errors.New("concurrent modification detected")
)
