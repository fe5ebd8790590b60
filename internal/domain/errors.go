package domain

import "errors"

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrValidation       = errors.New("validation failed")
	ErrTaskNotFound     = errors.New("task not found")
	ErrReminderNotFound = errors.New("reminder not found")
	ErrEventNotFound    = errors.New("event not found")
)
