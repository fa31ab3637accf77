package services

import (
	"fmt"
	"strings"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
)

// frustrationPhrases is the process-wide list of frustration indicators
// checked after the tenant's own escalation keywords. Matching is
// case-insensitive substring, same as for keywords.
var frustrationPhrases = []string{
	"terrible", "horrible", "pésimo", "nunca más", "estafa", "vergüenza",
}

// EscalationPolicy decides whether an inbound message requires human
// handoff. Matching is intentionally naive substring matching: no
// tokenization or stemming, so partial-word hits (e.g. "problema" inside
// "problemática") escalate too. That is accepted behavior.
type EscalationPolicy struct{}

// Evaluate checks text against cfg's escalation keywords (in definition
// order) and then the fixed frustration list. The first match wins. It
// returns the escalation flag and a human-readable reason, or (false, "").
func (EscalationPolicy) Evaluate(text string, cfg domain.TenantConfig) (bool, string) {
	lower := strings.ToLower(text)

	for _, kw := range cfg.EscalationKeywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true, fmt.Sprintf("Keyword detectado: '%s'", kw)
		}
	}

	for _, phrase := range frustrationPhrases {
		if strings.Contains(lower, phrase) {
			return true, "Cliente parece frustrado"
		}
	}

	return false, ""
}
