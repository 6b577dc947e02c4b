// Package services defines the business logic for buyer records, their
// audit history, and the CSV import/export flows. This file centralizes
// common service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import "errors"

// Buyer-related errors.
var (
	// ErrBuyerNotFound indicates that the requested buyer record does not
	// exist.
	ErrBuyerNotFound = errors.New("buyer not found")

	// ErrForbidden is returned when a user attempts to change or delete a
	// buyer record owned by someone else. Reads are not restricted.
	ErrForbidden = errors.New("you can only change your own buyers")

	// ErrStaleRecord is returned when an update carries an updatedAt
	// precondition older than the stored record, meaning someone else
	// changed it in between.
	ErrStaleRecord = errors.New("record changed, please refresh")

	// ErrInvalidFilter is returned when a list or export request names a
	// filter value outside the closed enum sets.
	ErrInvalidFilter = errors.New("invalid filter value")
)
