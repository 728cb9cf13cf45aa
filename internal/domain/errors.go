package domain

import "errors"

var (
	// ErrReservationNotFound is returned when no reservation matches a code
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrDuplicateCode is returned by a repository when the reservation code already exists
	ErrDuplicateCode = errors.New("duplicate reservation code")

	// ErrReservationNotSaved is returned when a confirmed reservation could not be written.
	// The session is left unchanged so the confirmation can be resent.
	ErrReservationNotSaved = errors.New("reservation not saved")

	// ErrGenerationFailed is returned when the text generator could not produce a reply
	ErrGenerationFailed = errors.New("text generation failed")
)
