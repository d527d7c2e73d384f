package model

import "errors"

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrUnknownPiece = errors.New("unknown piece")
	ErrGameOver     = errors.New("game is over")
	ErrInvalidColor = errors.New("invalid color")
	ErrNotPlayer    = errors.New("player not in game")

	ErrAlreadyConnected = errors.New("player already connected to game")
)
