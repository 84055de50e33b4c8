package extract

import (
	"fmt"
	"strings"

	"github.com/lexhours/lexhours/internal/taxonomy"
	"github.com/lexhours/lexhours/internal/types"
)

// maxFlattenedOptions bounds the per-field option catalog embedded in the
// system prompt. This is a presentation limit to fit the downstream model's
// context budget, not a filtering rule: truncation preserves the top-down,
// depth-first order.
const maxFlattenedOptions = 80

// DescribeFields renders the field schema as the plain-text catalog the
// model picks values from. Each option tree is flattened depth-first with a
// "[parent-label] " prefix on child values so hierarchy context survives in
// plain text.
func DescribeFields(fields []types.FormField) string {
	var lines []string
	for _, field := range fields {
		desc := fmt.Sprintf("- %s: %s", field.Key, field.Label)
		if field.Required {
			desc += " (必填)"
		}
		if len(field.Options) > 0 {
			flat := flattenOptions(field.Options, "")
			if len(flat) > 0 {
				shown := flat
				if len(shown) > maxFlattenedOptions {
					shown = shown[:maxFlattenedOptions]
				}
				desc += fmt.Sprintf("\n  可选值: %s", strings.Join(shown, ", "))
				if len(flat) > maxFlattenedOptions {
					desc += fmt.Sprintf(" ... 等共%d个选项", len(flat))
				}
			}
		}
		lines = append(lines, desc)
	}
	return strings.Join(lines, "\n")
}

// flattenOptions walks the option tree depth-first, prefixing child values
// with their parent's label.
func flattenOptions(opts []types.FieldOption, parentLabel string) []string {
	var flat []string
	for _, opt := range opts {
		if parentLabel != "" {
			flat = append(flat, fmt.Sprintf("[%s] %s", parentLabel, opt.Value))
		} else {
			flat = append(flat, opt.Value)
		}
		if len(opt.Children) > 0 {
			flat = append(flat, flattenOptions(opt.Children, opt.Label)...)
		}
	}
	return flat
}

const hoursRuleMentioned = `1. hours: 工作小时数（数字），"两小时"=2，"半小时"=0.5，"一个半小时"=1.5，"1h"=1，"2.5h"=2.5，"30分钟"=0.5`

const hoursRuleOmit = `1. hours: 用户没有提到时间，**绝对不要返回hours字段**`

// BuildSystemPrompt combines the center's business prose, the flattened
// field catalog and the hours-handling clause into one system prompt.
func BuildSystemPrompt(center taxonomy.Center, fieldsText, message string) string {
	hoursRule := hoursRuleOmit
	if MentionsHours(message) {
		hoursRule = hoursRuleMentioned
	}

	return fmt.Sprintf(`%s

用户需要填写的表单字段如下：
%s

**解析规则：**
%s
2. 选项格式：方括号内是父级分类名称（如_OKR、_BSC、_Others），后面是实际的选项值
3. 你必须返回实际的选项值，不是父级分类名
4. 对于tag字段，必须返回子选项的值，不能返回父级分类
5. 根据工作内容智能匹配最相关的选项
6. **极其重要：只返回用户明确提到或可以从内容直接推断的字段！**
   - 如果用户没有提到小组/Team，绝对不要返回team字段
   - 如果用户没有提到项目名称，绝对不要返回dealMatterName字段
   - 如果用户没有提到时间，绝对不要返回hours字段
   - 不要猜测、不要编造、不要假设任何信息
7. description: 工作的具体描述，从用户输入中提取或总结

**只返回JSON对象，不要有其他文字。只返回能从用户输入中直接提取或推断的字段。**`,
		taxonomy.Prompt(center), fieldsText, hoursRule)
}
