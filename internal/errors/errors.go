package errors

import (
	"errors"
	"fmt"
)

// NotFoundError signals that an operation targeted an id absent from
// the active backing. Distinguished from validation failures because it
// depends on storage state, not payload shape.
type NotFoundError struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFoundError creates a not-found error for the given entity/id.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// InfrastructureError wraps an unexpected storage failure with enough
// context to log meaningfully. Never produced for expected conditions
// like validation or not-found.
type InfrastructureError struct {
	Entity string
	Op     string
	ID     string
	Err    error
}

func (e *InfrastructureError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s: %v", e.Entity, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s (%s): %v", e.Entity, e.Op, e.ID, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError wraps a storage failure with entity/operation context.
func NewInfrastructureError(entity, op, id string, err error) *InfrastructureError {
	return &InfrastructureError{Entity: entity, Op: op, ID: id, Err: err}
}

// MigrationRecordError marks a single legacy record that failed to
// transform or persist during migration. The record is skipped and
// migration continues; this never escalates to an infrastructure error.
type MigrationRecordError struct {
	Entity   string
	RecordID string
	Err      error
}

func (e *MigrationRecordError) Error() string {
	return fmt.Sprintf("migration of %s record %s failed: %v", e.Entity, e.RecordID, e.Err)
}

func (e *MigrationRecordError) Unwrap() error {
	return e.Err
}

// NewMigrationRecordError wraps a per-record migration failure.
func NewMigrationRecordError(entity, recordID string, err error) *MigrationRecordError {
	return &MigrationRecordError{Entity: entity, RecordID: recordID, Err: err}
}

// IsNotFound reports whether err represents a "not found" condition.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsValidation reports whether err represents a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var ves ValidationErrors
	return errors.As(err, &ves)
}

// IsInfrastructure reports whether err represents a storage failure.
func IsInfrastructure(err error) bool {
	var ie *InfrastructureError
	return errors.As(err, &ie)
}

// IsMigrationRecord reports whether err is a skipped-record migration failure.
func IsMigrationRecord(err error) bool {
	var me *MigrationRecordError
	return errors.As(err, &me)
}
