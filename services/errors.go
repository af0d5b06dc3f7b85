package services

import "errors"

// Domain errors. Messages double as the wire error text the legacy clients
// expect, so they keep the original capitalization.
var (
	// ErrKartuLinkRequired is returned when the attendance event is missing its
	// card number or photo link.
	ErrKartuLinkRequired = errors.New("kartu and link are required")
	// ErrKartuNotFound is returned when no kartu matches the scanned number.
	ErrKartuNotFound = errors.New("Kartu not found")
	// ErrAkunNotFound is returned when a kartu exists but no account is bound to it.
	ErrAkunNotFound = errors.New("Akun not found for the given kartu")
	// ErrAbsenNotFound is returned when an attendance record id does not exist.
	ErrAbsenNotFound = errors.New("Absen not found")
	// ErrUserNotFound is returned by account management for a missing user id.
	ErrUserNotFound = errors.New("User not found")
	// ErrUsernameTaken is returned when registering or renaming to a username
	// that already exists.
	ErrUsernameTaken = errors.New("Username already exists")
	// ErrNomorKartuTaken is returned when a card number is already bound to
	// another account.
	ErrNomorKartuTaken = errors.New("Nomor kartu already registered")
	// ErrRegisterFieldsRequired is returned when registration fields are missing.
	ErrRegisterFieldsRequired = errors.New("kartu, username, password and nama are required")
)
