// Package converter serves the unit converter panel over net/http.
//
// The handler is stateless: every page carries the panel state in hidden
// inputs and each post replays the changed field against it. The embedded
// runtime script upgrades the form to in-place updates, while plain form
// submits keep working without JavaScript. A small JSON API exposes the
// catalog, single conversions and event replay.
package converter
