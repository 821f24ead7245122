package sc08a

import "errors"

var (
	// ErrInvalidChannel indicates a channel selector outside 0..8.
	ErrInvalidChannel = errors.New("invalid channel")
	// ErrInvalidPosition indicates a position above MaxPosition.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrInvalidOp indicates an unknown command.
	ErrInvalidOp = errors.New("invalid command")
)
