// Package store defines the account store: credentials plus the optional
// flight-detail sub-record the daily notifier scans by date.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when registering an email that exists.
	ErrDuplicateEmail = errors.New("email already in use")
)

// FlightDetails is an account's upcoming flight. Replaced wholesale on save,
// never partially merged.
type FlightDetails struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Destination string `json:"destination"`
}

// Account is a registered user.
type Account struct {
	ID            int64
	Email         string
	PasswordHash  string
	FlightDetails *FlightDetails
}

// AccountStore is the persistence contract for accounts. The notification
// pipeline only reads; the auth handlers create and update.
type AccountStore interface {
	// Create inserts a new account and returns its ID.
	// Returns ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, email, passwordHash string) (int64, error)

	// ByEmail returns the account with the given email, or ErrNotFound.
	ByEmail(ctx context.Context, email string) (*Account, error)

	// ByID returns the account with the given ID, or ErrNotFound.
	ByID(ctx context.Context, id int64) (*Account, error)

	// SaveFlightDetails replaces the account's flight details wholesale.
	SaveFlightDetails(ctx context.Context, id int64, fd FlightDetails) error

	// FindByFlightDate returns all accounts whose flight date equals date.
	FindByFlightDate(ctx context.Context, date string) ([]Account, error)
}
