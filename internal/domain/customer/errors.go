package customer

import (
	"fmt"

	"github.com/shopcrm/backend/internal/domain/shared"
)

// ReferenceKind names the entity an InvalidReferenceError points at
type ReferenceKind string

const (
	ReferenceShop    ReferenceKind = "shop"
	ReferenceChannel ReferenceKind = "channel"
)

// InvalidReferenceError is returned when a write names a shop or channel
// that cannot be resolved.
type InvalidReferenceError struct {
	Kind ReferenceKind
	ID   string
	// Cause is the directory error, usually a NOT_FOUND DomainError
	Cause error
}

// NewInvalidReferenceError creates an InvalidReferenceError
func NewInvalidReferenceError(kind ReferenceKind, id string, cause error) *InvalidReferenceError {
	return &InvalidReferenceError{Kind: kind, ID: id, Cause: cause}
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Kind, e.ID)
}

// Unwrap exposes the domain code. The directory cause is kept out of the chain
// so the error never matches NOT_FOUND of the customer itself.
func (e *InvalidReferenceError) Unwrap() error {
	return shared.NewDomainError(shared.CodeInvalidReference, e.Error())
}

// DuplicateEntityError is returned when (platform, externalId) is already taken
type DuplicateEntityError struct {
	Platform   string
	ExternalID string
}

// NewDuplicateEntityError creates a DuplicateEntityError
func NewDuplicateEntityError(platform, externalID string) *DuplicateEntityError {
	return &DuplicateEntityError{Platform: platform, ExternalID: externalID}
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("customer with platform %s and externalId %s already exists", e.Platform, e.ExternalID)
}

func (e *DuplicateEntityError) Unwrap() error {
	return shared.NewDomainError(shared.CodeAlreadyExists, e.Error())
}

// NotFoundError is returned when no customer matches the lookup
type NotFoundError struct {
	// Key is the id or identity that was looked up
	Key string
}

// NewNotFoundError creates a NotFoundError for a customer id
func NewNotFoundError(id int64) *NotFoundError {
	return &NotFoundError{Key: fmt.Sprintf("%d", id)}
}

// NewIdentityNotFoundError creates a NotFoundError for a platform identity
func NewIdentityNotFoundError(identity Identity) *NotFoundError {
	return &NotFoundError{Key: identity.String()}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("customer %s not found", e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return shared.NewDomainError(shared.CodeNotFound, e.Error())
}

// StorageFailureError wraps an unexpected store failure on a write path
type StorageFailureError struct {
	Op    string
	Cause error
}

// NewStorageFailureError creates a StorageFailureError
func NewStorageFailureError(op string, cause error) *StorageFailureError {
	return &StorageFailureError{Op: op, Cause: cause}
}

func (e *StorageFailureError) Error() string {
	return fmt.Sprintf("failed to %s customer: %v", e.Op, e.Cause)
}

// Unwrap exposes both the STORAGE_FAILURE code and the underlying cause
func (e *StorageFailureError) Unwrap() []error {
	return []error{shared.NewDomainError(shared.CodeStorageFailure, e.Error()), e.Cause}
}
