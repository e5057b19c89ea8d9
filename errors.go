package recmerge

import (
	"errors"

	"github.com/hkloudou/recmerge/internal/keypath"
	"github.com/hkloudou/recmerge/internal/merge"
)

var (
	// ErrNotObject is returned when a record is not a JSON object.
	ErrNotObject = merge.ErrNotObject
	// ErrInvalidPath is returned by ParsePath for malformed slash paths.
	ErrInvalidPath = keypath.ErrInvalid
	// ErrNotArray is returned by ParseRecords when the input is not a JSON array.
	ErrNotArray = errors.New("input is not a JSON array")
)
