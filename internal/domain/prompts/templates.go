package prompts

import (
	"fmt"

	"standard-ai/internal/domain/models"
)

const standardExpert = "你是一位专门编写技术标准的AI专家。"

// standardFamily 技术标准模板
var standardFamily = map[models.UseCase]Template{
	models.UseCaseScope: func(topic string) string {
		return fmt.Sprintf("%s请为一个关于“%s”的标准，生成“范围”部分的条款内容。内容应简洁、明确，准确界定标准的适用对象和边界。", standardExpert, topic)
	},
	models.UseCaseDefinitions: func(topic string) string {
		return fmt.Sprintf("%s请为一个关于“%s”的标准，生成“术语和定义”部分的条款内容。请列出与该主题相关的核心术语，并给出符合GB/T 1.1规范的定义。", standardExpert, topic)
	},
	models.UseCaseRequirements: func(topic string) string {
		return fmt.Sprintf("%s请为一个关于“%s”的标准，生成“要求”部分的核心条款内容。请从功能、性能、安全等方面，提出具体、可量化、可验证的技术要求。", standardExpert, topic)
	},
	models.UseCaseTestMethods: func(topic string) string {
		return fmt.Sprintf("%s请为一个关于“%s”的标准，生成“试验方法”部分的条款内容。内容应与“要求”部分的条款相对应，提供具体、可操作的测试步骤、环境和判定准则。", standardExpert, topic)
	},
}

const patentExpert = "你是一位资深的专利代理师，熟悉《专利审查指南》对申请文件撰写的要求。"

// patentFamily 专利申请文件模板，章节与标准章节一一对应
var patentFamily = map[models.UseCase]Template{
	models.UseCaseScope: func(topic string) string {
		return fmt.Sprintf("%s请为一项关于“%s”的发明专利申请，撰写“技术领域”部分。内容应简洁，指明发明所属或直接应用的具体技术领域。", patentExpert, topic)
	},
	models.UseCaseDefinitions: func(topic string) string {
		return fmt.Sprintf("%s请为一项关于“%s”的发明专利申请，撰写说明书中的术语解释部分。请列出说明书和权利要求书中使用的关键技术术语，并给出清楚、唯一的含义。", patentExpert, topic)
	},
	models.UseCaseRequirements: func(topic string) string {
		return fmt.Sprintf("%s请为一项关于“%s”的发明专利申请，撰写“权利要求书”。请先给出独立权利要求，再给出若干从属权利要求，保护范围清楚并以说明书为依据。", patentExpert, topic)
	},
	models.UseCaseTestMethods: func(topic string) string {
		return fmt.Sprintf("%s请为一项关于“%s”的发明专利申请，撰写“具体实施方式”部分。请结合实施例详细说明技术方案的实现步骤，并给出验证技术效果的实验或对比数据。", patentExpert, topic)
	},
}

const otherExpert = "你是一位经验丰富的技术文档撰写专家。"

// otherFamily 其他技术文件（规范、指南、技术报告等）模板
var otherFamily = map[models.UseCase]Template{
	models.UseCaseScope: func(topic string) string {
		return fmt.Sprintf("%s请为一份关于“%s”的技术文件，撰写“适用范围”部分。内容应说明文件的目的、适用对象和不适用的情形。", otherExpert, topic)
	},
	models.UseCaseDefinitions: func(topic string) string {
		return fmt.Sprintf("%s请为一份关于“%s”的技术文件，撰写“术语和缩略语”部分。请列出文件中使用的核心术语和缩略语，并给出准确的解释。", otherExpert, topic)
	},
	models.UseCaseRequirements: func(topic string) string {
		return fmt.Sprintf("%s请为一份关于“%s”的技术文件，撰写“技术要求”部分。要求应具体、可执行，并尽量给出可衡量的指标。", otherExpert, topic)
	},
	models.UseCaseTestMethods: func(topic string) string {
		return fmt.Sprintf("%s请为一份关于“%s”的技术文件，撰写“检验与验证”部分。内容应与技术要求相对应，说明检验方法、所需条件和合格判定依据。", otherExpert, topic)
	},
}

const reviewExpert = "你是一位专门审核公安技术标准的AI专家，精通中国国家标准（GB）和公安行业标准（GA）的编写规范，特别是GB/T 1.1-2020《标准化工作导则 第1部分：标准化文件的结构和起草规则》。"

const reviewTemplate = reviewExpert + `

请对以下提交的公安标准报批稿进行全面、细致的智能审核，并利用你的知识库进行核对。重点关注以下方面：
1.  **格式合规性**: 依据GB/T 1.1-2020检查文档结构是否完整、规范。
2.  **术语一致性**: 检查全文术语使用是否统一、准确。
3.  **规范性语言**: 检查助动词（如‘应’、‘宜’、‘可’）的使用是否符合标准编写要求。
4.  **内容逻辑性**: 审查技术要求的逻辑是否严密，是否存在矛盾。
5.  **引用文件准确性**: 检查所引用的标准文件是否现行有效。

请将审核结果严格按照以下JSON格式输出，不要包含任何额外说明文字：
{
  "standard_name": "标准名称（如果能识别）",
  "standard_type": "标准类型（国家标准/行业标准）",
  "overall_assessment": "对标准的总体评价和核心问题摘要",
  "overall_score": "综合评分（0-100）",
  "detailed_checks": {
    "format_compliance": { "score": "评分（0-10）", "findings": "具体发现和评价" },
    "terminology_consistency": { "score": "评分（0-10）", "findings": "具体发现和评价" },
    "normative_language": { "score": "评分（0-10）", "findings": "具体发现和评价" },
    "content_logic": { "score": "评分（0-10）", "findings": "具体发现和评价" },
    "reference_accuracy": { "score": "评分（0-10）", "findings": "具体发现和评价" }
  },
  "issues_and_suggestions": [
    {
      "clause": "问题所在条款号",
      "original_text": "有问题的原文",
      "issue_description": "问题描述",
      "suggestion": "修改建议",
      "severity": "严重程度（严重/一般/建议）"
    }
  ]
}

请审核以下文档内容:

`

const rewriteTemplate = "请根据以下要求重写这段文本：\n要求: \"%s\"\n原始文本: \"%s\""

const askTemplate = reviewExpert + "\n\n用户的问题是：%s\n\n请以专业、简洁的方式回答用户的问题。"
