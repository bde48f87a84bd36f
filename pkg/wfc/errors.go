package wfc

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWeight    = errors.New("wfc: tile weight must be positive and finite")
	ErrDuplicateTile    = errors.New("wfc: duplicate tile id")
	ErrUnknownTile      = errors.New("wfc: unknown tile")
	ErrUnknownPosition  = errors.New("wfc: unknown position")
	ErrInvalidDirection = errors.New("wfc: direction out of range")
	ErrAsymmetricRule   = errors.New("wfc: adjacency rule has no opposite counterpart")
	ErrAlreadyCollapsed = errors.New("wfc: cell already collapsed")
	ErrAlreadyZero      = errors.New("wfc: enabler count already zero")
	ErrTileNotAllowed   = errors.New("wfc: tile not allowed in cell")
	ErrContradiction    = errors.New("wfc: contradiction")
	ErrIncomplete       = errors.New("wfc: solve not complete")
)

// ContradictionError names the position whose allowed tile set ran empty.
// It matches ErrContradiction under errors.Is.
type ContradictionError struct {
	Position any
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("wfc: contradiction at %v", e.Position)
}

// Is reports whether target is ErrContradiction.
func (e *ContradictionError) Is(target error) bool { return target == ErrContradiction }
