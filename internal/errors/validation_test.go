package errors

import (
	"errors"
	"testing"
)

func TestValidationError(t *testing.T) {
	// Test NewValidationError
	err := NewValidationError("test_field", "test message", "test_value")

	if err.Field != "test_field" {
		t.Errorf("Expected field to be 'test_field', got '%s'", err.Field)
	}

	if err.Message != "test message" {
		t.Errorf("Expected message to be 'test message', got '%s'", err.Message)
	}

	if err.Value != "test_value" {
		t.Errorf("Expected value to be 'test_value', got '%v'", err.Value)
	}

	// Test Error method
	expected := "validation error on field 'test_field': test message"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	// Test empty ValidationErrors
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	// Test single ValidationError
	errs = append(errs, *NewValidationError("field1", "message1", nil))
	expected := "validation failed: field1 message1"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	// Test multiple ValidationErrors
	errs = append(errs, *NewValidationError("field2", "message2", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestErrorClassification(t *testing.T) {
	notFound := NewNotFoundError("question", "q1")
	if !IsNotFound(notFound) {
		t.Error("Expected IsNotFound to be true for NotFoundError")
	}
	if IsValidation(notFound) {
		t.Error("Expected IsValidation to be false for NotFoundError")
	}

	validation := NewValidationError("field", "bad", nil)
	if !IsValidation(validation) {
		t.Error("Expected IsValidation to be true for ValidationError")
	}

	var validations ValidationErrors
	validations = append(validations, *validation)
	if !IsValidation(validations) {
		t.Error("Expected IsValidation to be true for ValidationErrors")
	}

	infra := NewInfrastructureError("post", "list", "", errors.New("disk gone"))
	if !IsInfrastructure(infra) {
		t.Error("Expected IsInfrastructure to be true for InfrastructureError")
	}
	if IsNotFound(infra) {
		t.Error("Expected IsNotFound to be false for InfrastructureError")
	}

	record := NewMigrationRecordError("quiz", "123", errors.New("write rejected"))
	if !IsMigrationRecord(record) {
		t.Error("Expected IsMigrationRecord to be true for MigrationRecordError")
	}
	if !errors.Is(record, record.Err) && record.Unwrap() == nil {
		t.Error("Expected MigrationRecordError to unwrap its cause")
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	withID := NewNotFoundError("post", "abc")
	if withID.Error() != "post abc not found" {
		t.Errorf("Unexpected message: '%s'", withID.Error())
	}

	withoutID := NewNotFoundError("post", "")
	if withoutID.Error() != "post not found" {
		t.Errorf("Unexpected message: '%s'", withoutID.Error())
	}
}
