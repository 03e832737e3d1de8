// Package domain defines the core analytic entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrTaskIDEmpty is returned when a task or action has an empty task ID.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrClientEmpty is returned when a task or action has an empty client.
	ErrClientEmpty = errors.New("client cannot be empty")

	// ErrActionTimeZero is returned when an action carries no timestamp.
	ErrActionTimeZero = errors.New("action timestamp cannot be zero")
)
