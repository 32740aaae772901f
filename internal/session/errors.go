package session

import "errors"

var (
	ErrRosterFull      = errors.New("roster is full")
	ErrBlankName       = errors.New("player name is blank")
	ErrUnknownPlayer   = errors.New("player not found in dataset")
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("session limit reached")
	ErrSessionClosed   = errors.New("session closed")
)
