package editor

import "errors"

var (
	// ErrNoSelection is returned by operations that need a selected view.
	ErrNoSelection = errors.New("editor: nothing selected")

	// ErrNotResizable is returned when resizing a view the helper does not
	// allow to resize.
	ErrNotResizable = errors.New("editor: view is not resizable")

	// ErrUnsupported is returned by helpers for objects they cannot handle.
	ErrUnsupported = errors.New("editor: unsupported object")

	// ErrEmptyBounds is returned when a resize would leave a view without
	// area.
	ErrEmptyBounds = errors.New("editor: empty bounds")

	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("editor: nothing to undo")

	// ErrNothingToRedo is returned by Redo when no transaction was undone.
	ErrNothingToRedo = errors.New("editor: nothing to redo")
)
