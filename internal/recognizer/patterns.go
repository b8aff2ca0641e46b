package recognizer

import (
	"regexp"
	"strings"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
)

// rule is one fast-path intent pattern. Pattern matches are authoritative, so
// they carry full confidence and never go through the probabilistic service.
type rule struct {
	intent string
	re     *regexp.Regexp
	// facetGroup is the capture group index holding the search facet, 0 when
	// the rule extracts nothing.
	facetGroup int
}

var defaultRules = []rule{
	{
		intent:     model.IntentSearchPics,
		re:         regexp.MustCompile(`(?i)\bsearch\b.*?\b(?:pics?|pictures?|photos?|images?)\b(?:\s+(?:of|for)\s+(.+))?`),
		facetGroup: 1,
	},
	{
		intent: model.IntentShare,
		re:     regexp.MustCompile(`(?i)\bshare\b`),
	},
	{
		intent: model.IntentOrder,
		re:     regexp.MustCompile(`(?i)\border\b`),
	},
	{
		intent: model.IntentHelp,
		re:     regexp.MustCompile(`(?i)\bhelp\b`),
	},
	{
		intent: model.IntentGreeting,
		re:     regexp.MustCompile(`(?i)^\s*(?:hi|hello|hey|greetings|good\s+(?:morning|afternoon|evening))\b`),
	},
}

// matchRules returns the first matching rule's intent, or nil.
func matchRules(rules []rule, text string) *model.IntentResult {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		result := &model.IntentResult{Name: r.intent, Confidence: 1.0}
		if r.facetGroup > 0 && r.facetGroup < len(m) {
			if facet := cleanFacet(m[r.facetGroup]); facet != "" {
				result.Entities = map[string]string{model.FacetEntity: facet}
			}
		}
		return result
	}
	return nil
}

func cleanFacet(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimRight(s, ".!?,;")
}
