// Package orchestrator wires the catalog loader, panel, theme selector and
// renderer registry into a single entry point. Each Run restores a panel from
// serialized state, applies a batch of events, picks the theme variant for the
// current quantity and renders the result.
package orchestrator
