package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// sanitizeMessage keeps the small set of inline tags flash messages use for
// formatting and strips everything else.
func sanitizeMessage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(messageSanitizer().Sanitize(trimmed))
}

func sanitizeMessages(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, raw := range in {
		if cleaned := sanitizeMessage(raw); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("br", "b", "strong", "i", "em", "code")
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		policy.AllowStandardURLs()
		messagePolicy = policy
	})
	return messagePolicy
}
