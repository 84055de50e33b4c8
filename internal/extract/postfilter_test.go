package extract

import "testing"

func TestSanitize_StripsBracketPrefix(t *testing.T) {
	fields := map[string]any{
		"tag":      "[OKR] 合规检测项目开展",
		"category": "_1检测相关_常规",
		"hours":    2.5,
	}
	Sanitize(fields, "花了2.5h做检测项目，和小组同事一起")

	if got := fields["tag"]; got != "合规检测项目开展" {
		t.Errorf("tag = %q, want bracket prefix stripped", got)
	}
	if got := fields["category"]; got != "_1检测相关_常规" {
		t.Errorf("category = %q, want unchanged", got)
	}
}

func TestSanitize_HoursGate(t *testing.T) {
	// The model speculatively emitted hours; input has no time expression.
	fields := map[string]any{"hours": 2.0, "description": "合同审阅"}
	Sanitize(fields, "帮忙处理一下合同审阅")

	if _, ok := fields["hours"]; ok {
		t.Error("hours must be removed when the message has no time expression")
	}
	if fields["description"] != "合同审阅" {
		t.Error("unrelated fields must survive the gate")
	}
}

func TestSanitize_HoursKeptWithTimeExpression(t *testing.T) {
	fields := map[string]any{"hours": 2.5}
	Sanitize(fields, "开了两个半小时的会")

	if _, ok := fields["hours"]; !ok {
		t.Error("hours must survive when the message states a duration")
	}
}

func TestSanitize_TeamGate(t *testing.T) {
	tests := []struct {
		name    string
		message string
		keep    bool
	}{
		{"no team keyword", "帮忙处理一下合同审阅", false},
		{"团队 keyword", "和团队一起开会", true},
		{"english team keyword", "sync with the Team today", true},
		{"numbered group", "2组的周会", true},
		{"chinese numbered group", "三组材料整理", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := map[string]any{"team": "第二小组"}
			Sanitize(fields, tt.message)
			_, ok := fields["team"]
			if ok != tt.keep {
				t.Errorf("team present = %v, want %v", ok, tt.keep)
			}
		})
	}
}

func TestSanitize_GateIdempotent(t *testing.T) {
	fields := map[string]any{"hours": 1.0, "team": "一组", "tag": "[BSC] X"}
	msg := "日常事务"
	Sanitize(fields, msg)
	Sanitize(fields, msg)

	if _, ok := fields["hours"]; ok {
		t.Error("hours should stay removed")
	}
	if _, ok := fields["team"]; ok {
		t.Error("team should stay removed")
	}
	if fields["tag"] != "X" {
		t.Errorf("tag = %q, want %q", fields["tag"], "X")
	}
}
