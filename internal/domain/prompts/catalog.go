// Package prompts 提示词目录，按 (用例, 文档类型) 查表渲染提示词，无任何 I/O
package prompts

import (
	"fmt"
	"sort"
	"strings"

	"standard-ai/internal/domain/models"
)

// Template 条款模板，输入主题，输出完整提示词
type Template func(topic string) string

type templateKey struct {
	useCase models.UseCase
	kind    models.DocumentKind
}

// Catalog 提示词目录。
// 新增文档类型只需 RegisterFamily，不改变 Render 的调用方式。
// 初始化完成后只读，可并发使用。
type Catalog struct {
	templates map[templateKey]Template
}

// NewCatalog 创建包含标准、专利、其他三套模板的目录
func NewCatalog() *Catalog {
	c := &Catalog{templates: make(map[templateKey]Template)}
	c.RegisterFamily(models.DocumentKindStandard, standardFamily)
	c.RegisterFamily(models.DocumentKindPatent, patentFamily)
	c.RegisterFamily(models.DocumentKindOther, otherFamily)
	return c
}

// Register 注册单个模板，同键覆盖
func (c *Catalog) Register(kind models.DocumentKind, useCase models.UseCase, tmpl Template) {
	c.templates[templateKey{useCase: useCase, kind: kind}] = tmpl
}

// RegisterFamily 注册一套文档类型的模板
func (c *Catalog) RegisterFamily(kind models.DocumentKind, family map[models.UseCase]Template) {
	for useCase, tmpl := range family {
		c.Register(kind, useCase, tmpl)
	}
}

// Kinds 返回已注册的文档类型，按名称排序
func (c *Catalog) Kinds() []models.DocumentKind {
	seen := make(map[models.DocumentKind]struct{})
	for k := range c.templates {
		seen[k.kind] = struct{}{}
	}
	kinds := make([]models.DocumentKind, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Render 渲染条款生成提示词。
// 用例非法返回 ErrInvalidUseCase；主题为空或文档类型未注册返回 ErrInvalidInput。
func (c *Catalog) Render(useCase models.UseCase, topic string, kind models.DocumentKind) (string, error) {
	if !useCase.Valid() {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidUseCase, useCase)
	}
	if strings.TrimSpace(topic) == "" {
		return "", models.InvalidInputf("topic is required")
	}

	kind = kind.OrDefault()
	tmpl, ok := c.templates[templateKey{useCase: useCase, kind: kind}]
	if !ok {
		return "", models.InvalidInputf("unsupported document kind %q", kind)
	}
	return tmpl(topic), nil
}

// RenderSpec 渲染 PromptSpec
func (c *Catalog) RenderSpec(spec models.PromptSpec) (string, error) {
	return c.Render(spec.UseCase, spec.Topic, spec.DocumentKind)
}

// RenderReview 渲染文档审核提示词，文档内容原样附在末尾
func (c *Catalog) RenderReview(content string) string {
	return reviewTemplate + content
}

// RenderRewrite 渲染改写提示词
func (c *Catalog) RenderRewrite(instruction, selectedText string) (string, error) {
	if strings.TrimSpace(selectedText) == "" || strings.TrimSpace(instruction) == "" {
		return "", models.InvalidInputf("selected text and rewrite instruction are required")
	}
	return fmt.Sprintf(rewriteTemplate, instruction, selectedText), nil
}

// RenderAsk 渲染单轮问答提示词
func (c *Catalog) RenderAsk(question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", models.InvalidInputf("message is required")
	}
	return fmt.Sprintf(askTemplate, question), nil
}
