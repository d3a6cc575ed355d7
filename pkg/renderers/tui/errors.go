package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is returned when a select prompt would have nothing to pick.
	ErrNoOptions = errors.New("tui: no options to select")
	// ErrUnsupportedFormat is returned by New for an unknown output format.
	ErrUnsupportedFormat = errors.New("tui: unsupported output format")
	// errNotANumber is the inline validation message of value prompts.
	errNotANumber = errors.New("enter a number")
)
