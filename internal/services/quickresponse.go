package services

import (
	"strings"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
)

// QuickResponseMatcher resolves tenant-defined shortcut answers. It walks
// cfg.AutoResponses in definition order and returns the reply of the first
// rule whose trigger is a case-insensitive substring of the message; earlier
// rules shadow later ones, which is why the rules are an ordered slice.
type QuickResponseMatcher struct{}

// Match returns the quick reply for text, or ("", false) when no rule
// matches.
func (QuickResponseMatcher) Match(text string, cfg domain.TenantConfig) (string, bool) {
	lower := strings.ToLower(text)
	for _, ar := range cfg.AutoResponses {
		if ar.Trigger != "" && strings.Contains(lower, strings.ToLower(ar.Trigger)) {
			return ar.Reply, true
		}
	}
	return "", false
}
