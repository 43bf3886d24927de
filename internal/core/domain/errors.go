package domain

import (
	"errors"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Block Tree Errors.

	// ErrUnknownBlockType indicates a block type is not in the catalog.
	ErrUnknownBlockType = errors.New("unknown block type")

	// ErrBlockNotFound indicates an update or remove targeted a missing block id.
	ErrBlockNotFound = errors.New("block not found")

	// ErrDuplicateBlockID indicates an insert would break id uniqueness within a tree.
	ErrDuplicateBlockID = errors.New("duplicate block id")

	// ErrNotContainer indicates a child was added to a block type that cannot hold children.
	ErrNotContainer = errors.New("block type cannot have children")

	// ErrMalformedTemplate indicates a structurally broken template (missing root,
	// repeated ids along the tree, runaway nesting).
	ErrMalformedTemplate = errors.New("malformed template")

	// ErrValidationFailed indicates required fields or slots are missing.
	// Always carried by a *ValidationError holding every message.
	ErrValidationFailed = errors.New("validation failed")

	// Editor Errors.

	// ErrPageNotFound indicates a page id does not resolve in the session.
	ErrPageNotFound = errors.New("page not found")

	// ErrNoActiveTree indicates a block edit had no tree to act on
	// (no current page in pages mode, no template in template mode).
	ErrNoActiveTree = errors.New("no active block tree")

	// ErrNoSession indicates the editor has not been initialised with a site.
	ErrNoSession = errors.New("no editing session")

	// Collaborator Errors.

	// ErrPersistence indicates the persistence collaborator failed.
	// Distinct from ErrNotFound.
	ErrPersistence = errors.New("persistence failure")

	// ErrNetworkDegraded indicates the remote block catalog could not be fetched.
	// It is recovered locally by falling back to the built-in catalog.
	ErrNetworkDegraded = errors.New("block catalog unavailable")
)

// ValidationError carries every validation problem found, so the editor can
// show all of them at once.
type ValidationError struct {
	Messages []string
}

// NewValidationError returns a ValidationError, or nil when there are no messages.
func NewValidationError(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: append([]string(nil), messages...)}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error() + ": " + strings.Join(e.Messages, "; ")
}

// Unwrap allows errors.Is(err, ErrValidationFailed).
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
