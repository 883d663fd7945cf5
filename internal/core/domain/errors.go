package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Lending errors
var (
	ErrCopyNotAvailable = errors.New("copy is not available")
	ErrUserNotFound     = errors.New("user not found")
	ErrLoanNotExists    = errors.New("loan does not exist")
)

// User errors
var (
	ErrUserAlreadyExists = errors.New("user already exists")
)
