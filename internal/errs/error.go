package errs

import (
	"errors"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrBookItemTotalReduced rejects a bulk edit that would set a book's
	// copy total below its previously persisted value. Copies are removed
	// one at a time through copy deletion, never through the book form.
	ErrBookItemTotalReduced = errors.New("bookItemTotal cannot be reduced, delete book items instead")

	// ErrBookItemBorrowed rejects a checkout against a copy whose last
	// loan is still open.
	ErrBookItemBorrowed = errors.New("book item already has an open loan")

	ErrAlreadyExists = errors.New("already exists")
	ErrReferenced    = errors.New("record is referenced by other records")

	ErrInvalidCredentials = errors.New("invalid username or password")
)

type ValidationErrorResponse struct {
	Message string `json:"message"`
	Errors  struct {
		AdditionalProperties string `json:"additionalProperties"`
	} `json:"errors"`
}
