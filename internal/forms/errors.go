package forms

import "errors"

var (
	ErrNotFound       = errors.New("form state not found")
	ErrInvalidStep    = errors.New("unknown wizard step")
	ErrStepNotReached = errors.New("wizard step not reached")
)
