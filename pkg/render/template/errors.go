package template

import "errors"

// ErrNoEngine is returned when a template is executed without an engine.
var ErrNoEngine = errors.New("template: no engine configured")
