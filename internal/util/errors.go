package util

import "errors"

var (
	ErrTargetProfileEmpty    = errors.New("target profile has no topics configured")
	ErrTargetProfileNotFound = errors.New("target profile not found")
	ErrInvalidProfile        = errors.New("invalid target profile payload")
	ErrLearnerRequired       = errors.New("learner id is required")
	ErrAccountNotFound       = errors.New("service account not found")
	ErrAccountDisabled       = errors.New("service account disabled")
	ErrAccountExists         = errors.New("service account name already taken")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrArchiveUnavailable    = errors.New("report archive storage unavailable")
)
