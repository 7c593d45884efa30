// Package review 将模型的审核输出解析为结构化结果
package review

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"standard-ai/internal/domain/models"
)

const reviewSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["overall_score", "detailed_checks", "issues_and_suggestions"],
  "definitions": {
    "score": { "type": ["string", "number"] },
    "check": {
      "type": "object",
      "properties": {
        "score": { "$ref": "#/definitions/score" },
        "findings": { "type": "string" }
      }
    }
  },
  "properties": {
    "standard_name": { "type": "string" },
    "standard_type": { "type": "string" },
    "overall_assessment": { "type": "string" },
    "overall_score": { "$ref": "#/definitions/score" },
    "detailed_checks": {
      "type": "object",
      "additionalProperties": { "$ref": "#/definitions/check" }
    },
    "issues_and_suggestions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "clause": { "type": "string" },
          "original_text": { "type": "string" },
          "issue_description": { "type": "string" },
          "suggestion": { "type": "string" },
          "severity": { "type": "string" }
        }
      }
    }
  }
}`

// Parser 审核结果解析器，编译后的 schema 只读，可并发使用
type Parser struct {
	schema *gojsonschema.Schema
}

// NewParser 编译审核结果 schema
func NewParser() (*Parser, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(reviewSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile review schema: %w", err)
	}
	return &Parser{schema: schema}, nil
}

// MustNewParser 同 NewParser，schema 为内置常量，编译失败直接 panic
func MustNewParser() *Parser {
	p, err := NewParser()
	if err != nil {
		panic(err)
	}
	return p
}

// Parse 解析模型输出。解析失败时返回降级结果，从不返回错误。
func (p *Parser) Parse(raw string) *models.ReviewResult {
	result, err := p.Decode(raw)
	if err != nil {
		return Fallback(raw)
	}
	return result
}

// Decode 严格解析模型输出：必须是符合审核结果结构的 JSON 对象。
// 评分和文本原样保留，不做范围校验。
func (p *Parser) Decode(raw string) (*models.ReviewResult, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty model output")
	}

	validation, err := p.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}
	if !validation.Valid() {
		issues := make([]string, 0, len(validation.Errors()))
		for _, desc := range validation.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, fmt.Errorf("model output does not match review shape: %s", strings.Join(issues, "; "))
	}

	var result models.ReviewResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}
	if result.IssuesAndSuggestions == nil {
		result.IssuesAndSuggestions = []models.Issue{}
	}
	return &result, nil
}

// Fallback 构造降级结果：五个审核维度评分为 0，问题列表为空，保留原始文本
func Fallback(raw string) *models.ReviewResult {
	checks := make(map[models.CheckName]models.CheckResult, len(models.CheckNames))
	for _, name := range models.CheckNames {
		checks[name] = models.CheckResult{Score: models.NewScore(0)}
	}
	return &models.ReviewResult{
		OverallScore:         models.NewScore(0),
		DetailedChecks:       checks,
		IssuesAndSuggestions: []models.Issue{},
		RawResponse:          raw,
	}
}
