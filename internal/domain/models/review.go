package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CheckName 审核维度名称，集合固定
type CheckName string

const (
	CheckFormatCompliance       CheckName = "format_compliance"
	CheckTerminologyConsistency CheckName = "terminology_consistency"
	CheckNormativeLanguage      CheckName = "normative_language"
	CheckContentLogic           CheckName = "content_logic"
	CheckReferenceAccuracy      CheckName = "reference_accuracy"
)

// CheckNames 五个固定审核维度
var CheckNames = []CheckName{
	CheckFormatCompliance,
	CheckTerminologyConsistency,
	CheckNormativeLanguage,
	CheckContentLogic,
	CheckReferenceAccuracy,
}

// Severity 问题严重程度
type Severity string

const (
	SeveritySevere     Severity = "严重"
	SeverityModerate   Severity = "一般"
	SeveritySuggestion Severity = "建议"
)

// Score 模型给出的评分。
// 模型可能输出数字或字符串，原样保留其 JSON 表示，不做范围校验。
type Score struct {
	raw json.RawMessage
}

// NewScore 由整数构造评分
func NewScore(v int) Score {
	return Score{raw: json.RawMessage(fmt.Sprintf("%d", v))}
}

// ScoreFromString 由字符串构造评分，序列化时输出 JSON 字符串
func ScoreFromString(s string) Score {
	b, _ := json.Marshal(s)
	return Score{raw: b}
}

// String 返回评分的文本形式，字符串评分去掉引号
func (s Score) String() string {
	if len(s.raw) == 0 {
		return "0"
	}
	var str string
	if err := json.Unmarshal(s.raw, &str); err == nil {
		return str
	}
	return string(s.raw)
}

// IsZero 判断评分是否未设置
func (s Score) IsZero() bool {
	return len(s.raw) == 0
}

func (s Score) MarshalJSON() ([]byte, error) {
	if len(s.raw) == 0 {
		return []byte("0"), nil
	}
	return s.raw, nil
}

func (s *Score) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty score")
	}
	switch trimmed[0] {
	case '"', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s.raw = append(json.RawMessage(nil), trimmed...)
		return nil
	default:
		return fmt.Errorf("score must be a number or string, got %s", string(trimmed))
	}
}

// CheckResult 单个审核维度的结果
type CheckResult struct {
	Score    Score  `json:"score"`
	Findings string `json:"findings"`
}

// Issue 审核发现的问题及修改建议
type Issue struct {
	Clause           string   `json:"clause"`
	OriginalText     string   `json:"original_text"`
	IssueDescription string   `json:"issue_description"`
	Suggestion       string   `json:"suggestion"`
	Severity         Severity `json:"severity"`
}

// ReviewResult 标准文档审核结果。
// 模型输出无法解析时 RawResponse 保存原始文本，其余字段为零值。
type ReviewResult struct {
	StandardName         string                    `json:"standard_name"`
	StandardType         string                    `json:"standard_type"`
	OverallAssessment    string                    `json:"overall_assessment"`
	OverallScore         Score                     `json:"overall_score"`
	DetailedChecks       map[CheckName]CheckResult `json:"detailed_checks"`
	IssuesAndSuggestions []Issue                   `json:"issues_and_suggestions"`
	RawResponse          string                    `json:"rawResponse,omitempty"`
}

// Degraded 是否为解析失败后的降级结果
func (r *ReviewResult) Degraded() bool {
	return r.RawResponse != ""
}

// ReviewRequest 一次文档审核请求，仅在请求内有效
type ReviewRequest struct {
	// Data 文档原始字节
	Data []byte `json:"-"`

	// Format 文档格式标记，如 docx、txt、md
	Format string `json:"format"`

	// FileName 原始文件名
	FileName string `json:"file_name"`
}

// ReviewResponse 审核接口返回的数据
type ReviewResponse struct {
	Result   *ReviewResult `json:"data"`
	FileName string        `json:"fileName"`
}
