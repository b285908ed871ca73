package game

import "errors"

var (
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidStep = errors.New("invalid history step")
)
