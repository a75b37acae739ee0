package game

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrForbidden       = errors.New("owner token mismatch")
	ErrGameOver        = errors.New("game is over")
	ErrPositionChanged = errors.New("position changed during search")
)
