package penalty

import "errors"

var (
	ErrPenaltyNotFound      = errors.New("penalty not found")
	ErrPenaltyExists        = errors.New("penalty already issued for this date")
	ErrPenaltyAlreadyWaived = errors.New("penalty already waived")
)
