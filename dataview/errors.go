package dataview

import (
	"errors"
	"fmt"
)

var ErrMissingId = errors.New("each item must have a unique id property")
var ErrDuplicateId = errors.New("duplicate id")
var ErrInvalidId = errors.New("invalid id")
var ErrPrecondition = errors.New("precondition failed")

var errDestroyed = fmt.Errorf("%w: data view destroyed", ErrPrecondition)
