// Package services defines the business logic for content generation,
// summarization, and publishing. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrEmptyPrompt is returned when a generation request carries an empty
	// prompt.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrEmptyContent is returned when a summarization or publish request
	// carries no content.
	ErrEmptyContent = errors.New("content is empty")

	// ErrPlatformNotFound indicates that the named platform has no
	// registered connector. Absence is a normal outcome for lookups.
	ErrPlatformNotFound = errors.New("platform not found")

	// ErrNotAuthenticated indicates that a publish was attempted on a
	// platform whose connector holds no valid credentials.
	ErrNotAuthenticated = errors.New("platform not authenticated")
)
