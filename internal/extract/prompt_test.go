package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lexhours/lexhours/internal/taxonomy"
	"github.com/lexhours/lexhours/internal/types"
)

func sampleFields() []types.FormField {
	return []types.FormField{
		{
			Key:      "tag",
			Label:    "标签",
			Required: true,
			Options: []types.FieldOption{
				{Value: "_OKR", Label: "OKR", Children: []types.FieldOption{
					{Value: "合规检测项目开展", Label: "合规检测项目开展"},
					{Value: "VOC量化评估体系", Label: "VOC量化评估体系"},
				}},
				{Value: "_BSC", Label: "BSC", Children: []types.FieldOption{
					{Value: "金融合规培训活动运营", Label: "金融合规培训活动运营"},
				}},
			},
		},
		{Key: "hours", Label: "小时数", Required: true},
		{Key: "description", Label: "工作描述"},
	}
}

func TestDescribeFields_FlattensWithParentPrefix(t *testing.T) {
	text := DescribeFields(sampleFields())

	wants := []string{
		"- tag: 标签 (必填)",
		"_OKR",
		"[OKR] 合规检测项目开展",
		"[OKR] VOC量化评估体系",
		"[BSC] 金融合规培训活动运营",
		"- hours: 小时数 (必填)",
		"- description: 工作描述",
	}
	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Errorf("DescribeFields() missing %q\ngot:\n%s", want, text)
		}
	}
	if strings.Contains(text, "description: 工作描述 (必填)") {
		t.Error("optional field rendered as required")
	}
}

func TestDescribeFields_LeafValuesRoundTrip(t *testing.T) {
	// Every leaf value below the truncation limit must appear verbatim in
	// the rendered catalog.
	fields := sampleFields()
	text := DescribeFields(fields)

	var leaves []string
	var walk func(opts []types.FieldOption)
	walk = func(opts []types.FieldOption) {
		for _, o := range opts {
			leaves = append(leaves, o.Value)
			walk(o.Children)
		}
	}
	walk(fields[0].Options)

	for _, leaf := range leaves {
		if !strings.Contains(text, leaf) {
			t.Errorf("leaf value %q not found in flattened catalog", leaf)
		}
	}
}

func TestDescribeFields_TruncatesAtLimit(t *testing.T) {
	var opts []types.FieldOption
	for i := 0; i < 120; i++ {
		opts = append(opts, types.FieldOption{
			Value: fmt.Sprintf("option-%03d", i),
			Label: fmt.Sprintf("选项%03d", i),
		})
	}
	text := DescribeFields([]types.FormField{{Key: "task", Label: "任务", Options: opts}})

	if !strings.Contains(text, "option-079") {
		t.Error("entry 80 (index 79) should survive truncation")
	}
	if strings.Contains(text, "option-080") {
		t.Error("entry 81 (index 80) should be truncated")
	}
	if !strings.Contains(text, "等共120个选项") {
		t.Errorf("missing truncation marker, got:\n%s", text)
	}
	// Order preserved: first entry present.
	if !strings.Contains(text, "option-000") {
		t.Error("truncation must keep list head")
	}
}

func TestBuildSystemPrompt_HoursClause(t *testing.T) {
	fieldsText := DescribeFields(sampleFields())

	withTime := BuildSystemPrompt(taxonomy.CenterBiz, fieldsText, "开了两个半小时的会")
	if !strings.Contains(withTime, `"一个半小时"=1.5`) {
		t.Error("prompt with time expression must include conversion rules")
	}

	without := BuildSystemPrompt(taxonomy.CenterBiz, fieldsText, "帮忙处理一下合同审阅")
	if !strings.Contains(without, "绝对不要返回hours字段") {
		t.Error("prompt without time expression must instruct hours omission")
	}
}

func TestBuildSystemPrompt_EmbedsCenterProseAndCatalog(t *testing.T) {
	fieldsText := DescribeFields(sampleFields())
	prompt := BuildSystemPrompt(taxonomy.CenterInvest, fieldsText, "审阅SPA")

	if !strings.Contains(prompt, "投资法务中心") {
		t.Error("prompt missing invest center prose")
	}
	if !strings.Contains(prompt, fieldsText) {
		t.Error("prompt missing field catalog")
	}
}
