package extract

import "regexp"

// timePatterns is the fixed duration-pattern set. It gates both the hours
// clause in the system prompt and the post-filter's hours gate, and the
// accuracy statistics collected over time assume this exact set; do not
// extend it casually.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[0-9]+\.?[0-9]*\s*[hH小时]`),   // 2h, 2.5h, 2小时
	regexp.MustCompile(`[0-9]+\.?[0-9]*\s*hours?`),   // 2 hours
	regexp.MustCompile(`半小时`),
	regexp.MustCompile(`半个小时`),
	regexp.MustCompile(`一个半小时`),
	regexp.MustCompile(`两个半小时`),
	regexp.MustCompile(`[一二三四五六七八九十]+小时`), // Chinese numeral + 小时
	regexp.MustCompile(`[0-9]+\s*分钟`),              // 30分钟
	regexp.MustCompile(`[一二三四五六七八九十]+分钟`),
}

// MentionsHours reports whether the message contains an explicit time
// expression.
func MentionsHours(message string) bool {
	for _, p := range timePatterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}
