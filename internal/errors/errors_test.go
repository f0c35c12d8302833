package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("title is required")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "validation failed" {
		t.Errorf("NewValidationError message = %v, want %v", err.Message, "validation failed")
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "abc-123")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: abc-123" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: abc-123")
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, "NOT_FOUND")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "task" {
		t.Errorf("NewNotFoundError should set resource context")
	}

	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "abc-123" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewDatabaseError("save daily log", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: save daily log" {
		t.Errorf("NewDatabaseError message = %v, want %v", err.Message, "database operation failed: save daily log")
	}
	if err.Cause != cause {
		t.Errorf("NewDatabaseError cause = %v, want %v", err.Cause, cause)
	}

	operation, ok := err.GetContext("operation")
	if !ok || operation != "save daily log" {
		t.Errorf("NewDatabaseError should set operation context")
	}
}

func TestNewAudioError(t *testing.T) {
	cause := errors.New("no output device")
	err := NewAudioError("unlock", cause)

	if err.Type != ErrorTypeAudio {
		t.Errorf("NewAudioError type = %v, want %v", err.Type, ErrorTypeAudio)
	}
	if err.Message != "audio operation failed: unlock" {
		t.Errorf("NewAudioError message = %v, want %v", err.Message, "audio operation failed: unlock")
	}
	if err.Code != "AUDIO_ERROR" {
		t.Errorf("NewAudioError code = %v, want %v", err.Code, "AUDIO_ERROR")
	}
	if !errors.Is(fmt.Errorf("wrapped: %w", err), err) {
		t.Errorf("NewAudioError should support error wrapping")
	}
}

func TestIsErrorType(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		errorType ErrorType
		want      bool
	}{
		{
			name:      "should match validation error type",
			err:       NewValidationError("bad input", nil),
			errorType: ErrorTypeValidation,
			want:      true,
		},
		{
			name:      "should not match different error type",
			err:       NewValidationError("bad input", nil),
			errorType: ErrorTypeDatabase,
			want:      false,
		},
		{
			name:      "should match wrapped app error",
			err:       fmt.Errorf("context: %w", NewAudioError("play", nil)),
			errorType: ErrorTypeAudio,
			want:      true,
		},
		{
			name:      "should not match plain error",
			err:       errors.New("plain"),
			errorType: ErrorTypeValidation,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsErrorType(tt.err, tt.errorType); got != tt.want {
				t.Errorf("IsErrorType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "should pass through validation message",
			err:  NewValidationError("duration must be positive", nil),
			want: "duration must be positive",
		},
		{
			name: "should mask database details",
			err:  NewDatabaseError("save daily log", errors.New("locked")),
			want: "A database error occurred. Please try again.",
		},
		{
			name: "should explain an audio refusal",
			err:  NewAudioError("unlock", errors.New("device busy")),
			want: "Sound is not ready yet. Please try again in a moment.",
		},
		{
			name: "should fall back to plain error text",
			err:  errors.New("something else"),
			want: "something else",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.want {
				t.Errorf("GetUserMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldLogError(t *testing.T) {
	if ShouldLogError(NewValidationError("bad", nil)) {
		t.Error("validation errors should not be logged")
	}
	if !ShouldLogError(NewDatabaseError("save", nil)) {
		t.Error("database errors should be logged")
	}
	if !ShouldLogError(NewAudioError("play", nil)) {
		t.Error("audio errors should be logged")
	}
	if !ShouldLogError(errors.New("unknown")) {
		t.Error("unknown errors should be logged")
	}
}
