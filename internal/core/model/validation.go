package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Creation limits for new timers.
const (
	NameMinLength     = 2
	NameMaxLength     = 50
	CategoryMinLength = 2
	CategoryMaxLength = 30
	MaxDuration       = 86400
)

// Field names reported by ValidationError.
const (
	FieldName     = "name"
	FieldDuration = "duration"
	FieldCategory = "category"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (err *ValidationError) Error() string {
	parts := make([]string, 0, len(err.Fields))
	for _, field := range err.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field.Field, field.Message))
	}
	return "invalid timer: " + strings.Join(parts, "; ")
}

// Field returns the message for the named field, if it failed.
func (err *ValidationError) Field(name string) (string, bool) {
	for _, field := range err.Fields {
		if field.Field == name {
			return field.Message, true
		}
	}
	return "", false
}

// TimerInput is the user-supplied data for a new timer.
type TimerInput struct {
	Name     string
	Duration int
	Category string
}

// Normalize trims surrounding whitespace from text fields.
func (input TimerInput) Normalize() TimerInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	return input
}

// Validate checks the normalized input against the creation limits.
func (input TimerInput) Validate() error {
	input = input.Normalize()
	var fields []FieldError

	nameLength := utf8.RuneCountInString(input.Name)
	switch {
	case nameLength == 0:
		fields = append(fields, FieldError{FieldName, "Timer name is required"})
	case nameLength < NameMinLength:
		fields = append(fields, FieldError{FieldName, fmt.Sprintf("Timer name must be at least %d characters", NameMinLength)})
	case nameLength > NameMaxLength:
		fields = append(fields, FieldError{FieldName, fmt.Sprintf("Timer name must be at most %d characters", NameMaxLength)})
	}

	switch {
	case input.Duration <= 0:
		fields = append(fields, FieldError{FieldDuration, "Duration must be greater than 0"})
	case input.Duration > MaxDuration:
		fields = append(fields, FieldError{FieldDuration, fmt.Sprintf("Duration cannot exceed 24 hours (%d seconds)", MaxDuration)})
	}

	categoryLength := utf8.RuneCountInString(input.Category)
	switch {
	case categoryLength == 0:
		fields = append(fields, FieldError{FieldCategory, "Category is required"})
	case categoryLength < CategoryMinLength:
		fields = append(fields, FieldError{FieldCategory, fmt.Sprintf("Category must be at least %d characters", CategoryMinLength)})
	case categoryLength > CategoryMaxLength:
		fields = append(fields, FieldError{FieldCategory, fmt.Sprintf("Category must be at most %d characters", CategoryMaxLength)})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
