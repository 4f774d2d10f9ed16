package leaderboard

import "errors"

var (
	ErrInvalidFormat     = errors.New("invalid data format")
	ErrScoreOutOfRange   = errors.New("score out of range")
	ErrIncorrectPassword = errors.New("incorrect password")
)
