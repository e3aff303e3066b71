package services

import (
	"errors"
	"strings"
)

// Sentinel errors for every recoverable domain outcome. These are return
// values, never panics; presentation layers branch on them with errors.Is.

var (
	// ErrNameAlreadyTaken is returned when a user with the same first and last
	// name already exists, or a manufacturer rename collides with another name.
	ErrNameAlreadyTaken = errors.New("name already taken")

	// ErrEmailAlreadyTaken is returned when another user already registered
	// the exact same email address.
	ErrEmailAlreadyTaken = errors.New("email already taken")

	// ErrPlacementAlreadyTaken is returned when another part already occupies
	// the requested placement location.
	ErrPlacementAlreadyTaken = errors.New("placement already taken")

	// ErrPlacementTooLong is returned when a placement exceeds the stored
	// column width instead of letting the driver's truncation error leak.
	ErrPlacementTooLong = errors.New("placement exceeds 8 characters")

	// ErrMissingName is returned when a user is created or updated with a
	// blank first or last name.
	ErrMissingName = errors.New("first and last name are required")

	// ErrPartsStillCheckedOut is returned when a delete is blocked by live
	// checkouts (or, for a manufacturer, by parts still assigned to it).
	ErrPartsStillCheckedOut = errors.New("parts still checked out")

	// ErrGenerationExhausted is returned when identifier generation gives up
	// after the retry ceiling instead of looping forever.
	ErrGenerationExhausted = errors.New("identifier generation exhausted")

	// ErrNoMatch is the typed stand-in for the "No matching items"
	// placeholder record: a search that found nothing.
	ErrNoMatch = errors.New("no matching items")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPartNotFound is returned when the referenced part does not exist.
	ErrPartNotFound = errors.New("part not found")

	// ErrManufacturerNotFound is returned when the referenced manufacturer
	// does not exist.
	ErrManufacturerNotFound = errors.New("manufacturer not found")

	// ErrUnknownColumn is returned when a search filter names a column that
	// is not in the target's allowlist.
	ErrUnknownColumn = errors.New("unknown filter column")
)

// isUniqueViolation reports whether a storage error is a unique-constraint
// violation. PostgreSQL SQLSTATE 23505; sqlite spells it out.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether a storage error is a foreign-key
// violation. PostgreSQL SQLSTATE 23503; sqlite spells it out.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23503") || strings.Contains(msg, "FOREIGN KEY constraint failed")
}
