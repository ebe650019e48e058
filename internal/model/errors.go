package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrGameExists          = errors.New("game id already exists")
	ErrGameExpired         = errors.New("game is outside its time window")
	ErrGameAlreadyEnded    = errors.New("game has already ended")
	ErrQuitWindowClosed    = errors.New("quit grace period has passed")
	ErrSolutionUnavailable = errors.New("no usable solution point found")
	ErrInvalidGameParams   = errors.New("invalid game parameters")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
