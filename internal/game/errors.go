package game

import "errors"

// Game errors
var (
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrOutOfRange            = errors.New("target out of range")
	ErrAlreadyActed          = errors.New("already acted this turn")
	ErrInvalidTarget         = errors.New("invalid target")
	ErrTileUnavailable       = errors.New("tile occupied or inaccessible")
	ErrOutOfBounds           = errors.New("position out of bounds")
	ErrNotYourTurn           = errors.New("not your turn")
	ErrInvalidAction         = errors.New("invalid action for current phase")
	ErrNotBuilt              = errors.New("building is still under construction")
	ErrGameOver              = errors.New("game is over")
)
