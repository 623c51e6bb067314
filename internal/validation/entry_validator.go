package validation

import (
	"time"
)

// EntryValidator provides validation for log entry operations.
// End times are deliberately unchecked: an end before the start is
// stored as-is and renders as a zero duration.
type EntryValidator struct {
	validator *Validator
}

// NewEntryValidator creates a new entry validator
func NewEntryValidator() *EntryValidator {
	return &EntryValidator{
		validator: NewValidator(),
	}
}

// ValidateForCreation validates a log entry for creation
func (ev *EntryValidator) ValidateForCreation(taskName string, startTime time.Time) error {
	validationError := NewValidationError()

	trimmedName := ev.validator.TrimAndValidateString(taskName)
	if !ev.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("task name")
	} else if !ev.validator.IsValidTaskNameLength(trimmedName) {
		validationError.AddInvalidLengthError("task name", taskName, 1, 255)
	}

	if startTime.IsZero() {
		validationError.AddRequiredError("start time")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateForUpdate validates a log entry for update
func (ev *EntryValidator) ValidateForUpdate(id int64, taskName string, startTime time.Time) error {
	validationError := NewValidationError()

	if !ev.validator.IsValidEntryID(id) {
		validationError.AddInvalidValueError("entry id", id, "must be a positive integer")
	}

	if creationErr := ev.ValidateForCreation(taskName, startTime); creationErr != nil {
		if creationValidationErr, ok := creationErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, creationValidationErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateEntryID validates a log entry ID
func (ev *EntryValidator) ValidateEntryID(id int64) error {
	if !ev.validator.IsValidEntryID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("entry id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
