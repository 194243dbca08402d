// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

// Package validation wraps go-playground/validator v10 behind a thread-safe
// singleton with human-readable error translation. It validates both HTTP
// request bodies and inbound websocket event payloads.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes a single failed field.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return e.Message
}

// StructError aggregates all failed fields of one struct validation.
type StructError struct {
	fields []FieldError
}

// Fields returns the individual field failures.
func (e *StructError) Fields() []FieldError {
	return e.fields
}

// Error implements the error interface with a combined message.
func (e *StructError) Error() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.fields))
	for i, f := range e.fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// Details returns a field -> message map for API error responses.
func (e *StructError) Details() map[string]string {
	details := make(map[string]string, len(e.fields))
	for _, f := range e.fields {
		details[f.Field] = f.Message
	}
	return details
}

// GetValidator returns the singleton validator instance. Thread-safe;
// struct metadata is cached after the first validation of each type.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes.
func ValidateStruct(s interface{}) *StructError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: the value was not a struct at all.
		return &StructError{fields: []FieldError{{
			Field:   "",
			Message: err.Error(),
		}}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translateError(fe),
		})
	}
	return &StructError{fields: fields}
}

// translateError converts a validator.FieldError into a readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
