package validation

import (
	"fmt"
	"strings"

	"focusflow/internal/domain"
)

// Limits bound the inputs that start a session. They default to sane values
// and are overridable through the configuration system.
type Limits struct {
	TitleMinLength     int
	TitleMaxLength     int
	DurationMinMinutes int
	DurationMaxMinutes int
}

// DefaultLimits returns the built-in session input limits. A session must run
// at least one minute; ten hours is already well past anything a single focus
// interval should be.
func DefaultLimits() Limits {
	return Limits{
		TitleMinLength:     1,
		TitleMaxLength:     255,
		DurationMinMinutes: 1,
		DurationMaxMinutes: 600,
	}
}

// SessionValidator validates the inputs that start a focus session.
type SessionValidator struct {
	limits Limits
}

// NewSessionValidator creates a session validator with the default limits
func NewSessionValidator() *SessionValidator {
	return NewSessionValidatorWithLimits(DefaultLimits())
}

// NewSessionValidatorWithLimits creates a session validator with configured limits
func NewSessionValidatorWithLimits(limits Limits) *SessionValidator {
	return &SessionValidator{limits: limits}
}

// ValidateTitle validates a session title
func (sv *SessionValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		validationError.AddRequiredError("title")
		return validationError
	}

	if len(trimmed) < sv.limits.TitleMinLength || len(trimmed) > sv.limits.TitleMaxLength {
		validationError.AddInvalidLengthError("title", trimmed, sv.limits.TitleMinLength, sv.limits.TitleMaxLength)
		return validationError
	}

	return nil
}

// ValidateDuration validates a session duration in minutes
func (sv *SessionValidator) ValidateDuration(minutes int) error {
	if minutes < sv.limits.DurationMinMinutes || minutes > sv.limits.DurationMaxMinutes {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("duration_minutes", minutes,
			fmt.Sprintf("must be between %d and %d minutes",
				sv.limits.DurationMinMinutes, sv.limits.DurationMaxMinutes))
		return validationError
	}
	return nil
}

// ValidateSubtasks validates a subtask list supplied at session start
func (sv *SessionValidator) ValidateSubtasks(subtasks []domain.Subtask) error {
	validationError := NewValidationError()

	for _, st := range subtasks {
		if strings.TrimSpace(st.Title) == "" {
			validationError.AddRequiredError("subtask_title")
		}
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateSessionStart validates everything needed to begin a session
func (sv *SessionValidator) ValidateSessionStart(title string, minutes int, subtasks []domain.Subtask) error {
	validationError := NewValidationError()

	if err := sv.ValidateTitle(title); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, ve.Errors...)
		}
	}
	if err := sv.ValidateDuration(minutes); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, ve.Errors...)
		}
	}
	if err := sv.ValidateSubtasks(subtasks); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, ve.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// CleanTitle returns a trimmed title if valid
func (sv *SessionValidator) CleanTitle(title string) (string, error) {
	if err := sv.ValidateTitle(title); err != nil {
		return "", err
	}
	return strings.TrimSpace(title), nil
}
