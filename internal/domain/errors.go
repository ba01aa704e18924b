package domain

import "errors"

// Domain errors
var (
	ErrRoomExists      = errors.New("room already exists")
	ErrRoomNotFound    = errors.New("room not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrGameInProgress  = errors.New("game has already started")
	ErrNotHost         = errors.New("only the host can perform this action")
	ErrHostCannotGuess = errors.New("the host does not guess")
	ErrInvalidPhase    = errors.New("invalid action for current phase")
	ErrGuessesMissing  = errors.New("not every player has guessed yet")
	ErrEmptyName       = errors.New("player name cannot be empty")
	ErrEmptySubmission = errors.New("submission must reference a video")
)
