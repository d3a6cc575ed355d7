// Package widget models the two interactive pieces of the converter: a
// Selector holding the chosen quantity and a Panel holding two unit pickers and
// two numeric fields that stay synchronized in both directions.
//
// The panel is a plain synchronous state machine. Editing one field recomputes
// the other; changing the quantity or either unit resets both fields to zero.
// Shells (HTML, terminal prompts, live TUI) drive it through its methods or by
// replaying Events, and read it back through View.
package widget
