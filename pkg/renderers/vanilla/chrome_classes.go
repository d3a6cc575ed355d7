package vanilla

// ChromeClass is a typed identifier for the semantic CSS classes the panel
// markup carries.
type ChromeClass string

const (
	ClassPanel    ChromeClass = "unitconv-panel"
	ClassSelector ChromeClass = "unitconv-selector"
	ClassField    ChromeClass = "unitconv-field"
	ClassActions  ChromeClass = "unitconv-actions"
	ClassErrors   ChromeClass = "unitconv-errors"
	ClassSummary  ChromeClass = "unitconv-summary"
)

// Default*Class values are used when WithChromeClasses leaves a slot empty.
const (
	DefaultPanelClass    = string(ClassPanel)
	DefaultSelectorClass = string(ClassSelector)
	DefaultFieldClass    = string(ClassField)
	DefaultActionsClass  = string(ClassActions)
	DefaultErrorsClass   = string(ClassErrors)
	DefaultSummaryClass  = string(ClassSummary)
)

// ChromeClasses overrides the class attribute of each panel region.
type ChromeClasses struct {
	Panel    string
	Selector string
	Field    string
	Actions  string
	Errors   string
	Summary  string
}

func (c ChromeClasses) withDefaults() ChromeClasses {
	out := c
	if out.Panel == "" {
		out.Panel = DefaultPanelClass
	}
	if out.Selector == "" {
		out.Selector = DefaultSelectorClass
	}
	if out.Field == "" {
		out.Field = DefaultFieldClass
	}
	if out.Actions == "" {
		out.Actions = DefaultActionsClass
	}
	if out.Errors == "" {
		out.Errors = DefaultErrorsClass
	}
	if out.Summary == "" {
		out.Summary = DefaultSummaryClass
	}
	return out
}

func (c ChromeClasses) asMap() map[string]any {
	return map[string]any{
		"panel":    c.Panel,
		"selector": c.Selector,
		"field":    c.Field,
		"actions":  c.Actions,
		"errors":   c.Errors,
		"summary":  c.Summary,
	}
}
