package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// sanitizeDescription keeps inline emphasis and sub/superscripts from catalog
// descriptions ("m<sup>3</sup>") and strips everything else.
func sanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed))
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("em", "strong", "b", "i", "code", "sub", "sup", "abbr")
		policy.AllowAttrs("title").OnElements("abbr")
		descriptionPolicy = policy
	})
	return descriptionPolicy
}
