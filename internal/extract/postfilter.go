package extract

import (
	"regexp"
	"strings"
)

// bracketPrefix matches a leading "[parent-label] " the model may have
// echoed back from the flattened option catalog.
var bracketPrefix = regexp.MustCompile(`^\[.*?\]\s*`)

// teamKeywords gate the team field: unless one of these appears in the
// lowercased message, a model-supplied team value is speculative.
var teamKeywords = []string{
	"小组", "团队", "team", "1组", "2组", "3组", "4组", "5组",
	"一组", "二组", "三组", "四组", "五组", "group",
}

// Sanitize enforces that the extraction result never carries fields beyond
// what the input text supports, and normalizes option values. It mutates
// fields in place and runs unconditionally after parsing; there is no
// bypass. The hours and team gates are countermeasures against model
// over-generation and must hold regardless of what the upstream returned.
func Sanitize(fields map[string]any, message string) {
	for key, value := range fields {
		if s, ok := value.(string); ok {
			fields[key] = bracketPrefix.ReplaceAllString(s, "")
		}
	}

	if !MentionsHours(message) {
		delete(fields, "hours")
	}

	lower := strings.ToLower(message)
	mentionsTeam := false
	for _, kw := range teamKeywords {
		if strings.Contains(lower, kw) {
			mentionsTeam = true
			break
		}
	}
	if !mentionsTeam {
		delete(fields, "team")
	}
}
