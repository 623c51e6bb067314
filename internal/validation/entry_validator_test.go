package validation

import (
	"strings"
	"testing"
	"time"
)

func TestEntryValidator_ValidateForCreation(t *testing.T) {
	validator := NewEntryValidator()
	now := time.Now()

	tests := []struct {
		name        string
		taskName    string
		startTime   time.Time
		expectError bool
		errorField  string
	}{
		{
			name:        "Valid entry",
			taskName:    "Writing report",
			startTime:   now,
			expectError: false,
		},
		{
			name:        "Empty task name",
			taskName:    "",
			startTime:   now,
			expectError: true,
			errorField:  "task name",
		},
		{
			name:        "Whitespace-only task name",
			taskName:    "   ",
			startTime:   now,
			expectError: true,
			errorField:  "task name",
		},
		{
			name:        "Zero start time",
			taskName:    "Writing report",
			startTime:   time.Time{},
			expectError: true,
			errorField:  "start time",
		},
		{
			name:        "Task name too long",
			taskName:    strings.Repeat("a", 256),
			startTime:   now,
			expectError: true,
			errorField:  "task name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateForCreation(tt.taskName, tt.startTime)

			if tt.expectError {
				if err == nil {
					t.Fatalf("ValidateForCreation() = nil, expected error")
				}
				ve, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				if len(ve.GetFieldErrors(tt.errorField)) == 0 {
					t.Errorf("expected an error for field %q, got %v", tt.errorField, ve.Errors)
				}
			} else if err != nil {
				t.Errorf("ValidateForCreation() = %v, expected nil", err)
			}
		})
	}
}

func TestEntryValidator_ValidateForCreation_CollectsAllErrors(t *testing.T) {
	validator := NewEntryValidator()

	err := validator.ValidateForCreation("", time.Time{})
	if err == nil {
		t.Fatalf("expected error for empty entry")
	}

	ve := err.(*ValidationError)
	if len(ve.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d: %v", len(ve.Errors), ve.Errors)
	}
}

func TestEntryValidator_ValidateForUpdate(t *testing.T) {
	validator := NewEntryValidator()
	now := time.Now()

	tests := []struct {
		name        string
		id          int64
		taskName    string
		startTime   time.Time
		expectError bool
	}{
		{
			name:        "Valid update",
			id:          1,
			taskName:    "Writing report",
			startTime:   now,
			expectError: false,
		},
		{
			name:        "Invalid ID",
			id:          0,
			taskName:    "Writing report",
			startTime:   now,
			expectError: true,
		},
		{
			name:        "Invalid ID and empty name",
			id:          -1,
			taskName:    "",
			startTime:   now,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateForUpdate(tt.id, tt.taskName, tt.startTime)
			if tt.expectError && err == nil {
				t.Errorf("ValidateForUpdate() = nil, expected error")
			}
			if !tt.expectError && err != nil {
				t.Errorf("ValidateForUpdate() = %v, expected nil", err)
			}
		})
	}
}

func TestEntryValidator_ValidateEntryID(t *testing.T) {
	validator := NewEntryValidator()

	if err := validator.ValidateEntryID(1); err != nil {
		t.Errorf("ValidateEntryID(1) = %v, expected nil", err)
	}

	if err := validator.ValidateEntryID(0); err == nil {
		t.Errorf("ValidateEntryID(0) = nil, expected error")
	}

	if err := validator.ValidateEntryID(-5); err == nil {
		t.Errorf("ValidateEntryID(-5) = nil, expected error")
	}
}
