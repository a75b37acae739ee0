package chess3d

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidFEN      = errors.New("invalid FEN")
)
