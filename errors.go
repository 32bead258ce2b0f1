package sceneview

import (
	"errors"
	"fmt"
)

// Sentinel errors for the sceneview package.
var (
	// ErrUnknownClass is returned by Codec.Unmarshal when the payload names
	// a class with no registered decoder.
	ErrUnknownClass = errors.New("sceneview: unknown view class")

	// ErrNotObject is returned when a JSON payload is not an object.
	ErrNotObject = errors.New("sceneview: payload is not a JSON object")

	// ErrNilView is returned when encoding a nil view.
	ErrNilView = errors.New("sceneview: nil view")
)

// PaintError reports a canvas failure while painting one view. Painting
// recovers from it with a fallback outline, it is passed to the logger only.
type PaintError struct {
	Class string
	Op    string
	Err   error
}

func (e *PaintError) Error() string {
	return fmt.Sprintf("sceneview: %s %s failed: %v", e.Class, e.Op, e.Err)
}

func (e *PaintError) Unwrap() error { return e.Err }
