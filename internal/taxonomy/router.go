package taxonomy

import "strings"

// teamRule maps a team-name substring list to a center. Rules are evaluated
// in slice order; the first rule with any substring hit wins.
type teamRule struct {
	center     Center
	substrings []string
}

// keywordRule maps a message/schema keyword list to a center. The slice
// order is the fixed evaluation order and must not be reordered: downstream
// accuracy measurements depend on routing staying reproducible.
type keywordRule struct {
	center   Center
	keywords []string
}

var teamRules = []teamRule{
	{CenterInvest, []string{"投资法务", "investment"}},
	{CenterCorp, []string{"公司及国际金融", "国际金融事务"}},
	{CenterBiz, []string{"业务管理", "合规检测"}},
}

var keywordRules = []keywordRule{
	{CenterInvest, []string{
		"投资法务", "investment", "m&a", "spa", "sha", "ldd", "term sheet",
		"ipo", "并购", "尽职调查", "资本市场", "capital market", "fund", "基金",
		"deal/matter", "shareholder", "股东",
	}},
	{CenterCorp, []string{
		"公司及国际金融", "国际金融事务", "corporate", "international",
		"tencent cloud", "wechat pay", "fintech", "entity", "office",
		"境内外主体", "国际监管", "regulatory",
	}},
	{CenterBiz, []string{
		"业务管理", "合规检测", "检测项目", "voc", "五部门", "香港钱包",
	}},
}

// Resolve maps a request to exactly one center. Tiers, first match wins:
//  1. an explicit center supplied by the caller is used unconditionally;
//     an unrecognized explicit value resolves to the default center rather
//     than falling into the inference tiers;
//  2. a supplied team name is matched case-insensitively against the team
//     substring lists;
//  3. the message plus the serialized field schema is scanned against the
//     keyword lists in fixed center order;
//  4. otherwise the default center.
//
// Resolve never fails; the default center is always a valid fallback.
func Resolve(explicit Center, teamName, message, fieldsText string) Center {
	if explicit != "" {
		if Known(explicit) {
			return explicit
		}
		return CenterDefault
	}

	if teamName != "" {
		team := strings.ToLower(teamName)
		for _, rule := range teamRules {
			for _, sub := range rule.substrings {
				if strings.Contains(team, sub) {
					return rule.center
				}
			}
		}
	}

	combined := strings.ToLower(message + " " + fieldsText)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(combined, kw) {
				return rule.center
			}
		}
	}

	return CenterDefault
}
