// Package template defines the template engine seam used by the HTML
// renderer. The interface mirrors the github.com/goliatone/go-template engine
// contract so either engine can back the vanilla renderer.
package template
