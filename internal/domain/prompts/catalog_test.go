package prompts

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standard-ai/internal/domain/models"
)

func TestRenderDeterministic(t *testing.T) {
	c := NewCatalog()
	kinds := []models.DocumentKind{"", models.DocumentKindStandard, models.DocumentKindPatent, models.DocumentKindOther}

	for _, kind := range kinds {
		for _, useCase := range models.UseCases {
			first, err := c.Render(useCase, "智能门锁", kind)
			require.NoError(t, err)
			second, err := c.Render(useCase, "智能门锁", kind)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			assert.Contains(t, first, "“智能门锁”")
		}
	}
}

func TestRenderInvalidUseCase(t *testing.T) {
	c := NewCatalog()
	for _, useCase := range []models.UseCase{"", "appendix", "SCOPE", "foreword"} {
		_, err := c.Render(useCase, "topic", models.DocumentKindStandard)
		assert.True(t, errors.Is(err, models.ErrInvalidUseCase), "use case %q", useCase)
	}
}

func TestRenderEmptyTopic(t *testing.T) {
	c := NewCatalog()
	_, err := c.Render(models.UseCaseScope, "   ", models.DocumentKindStandard)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestRenderUnknownKind(t *testing.T) {
	c := NewCatalog()
	_, err := c.Render(models.UseCaseScope, "topic", "thesis")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestRenderStandardScopeText(t *testing.T) {
	c := NewCatalog()
	got, err := c.Render(models.UseCaseScope, "人脸识别", "")
	require.NoError(t, err)

	want := "你是一位专门编写技术标准的AI专家。请为一个关于“人脸识别”的标准，生成“范围”部分的条款内容。内容应简洁、明确，准确界定标准的适用对象和边界。"
	assert.Equal(t, want, got)
}

func TestFamiliesDiffer(t *testing.T) {
	c := NewCatalog()
	standard, err := c.Render(models.UseCaseRequirements, "topic", models.DocumentKindStandard)
	require.NoError(t, err)
	patent, err := c.Render(models.UseCaseRequirements, "topic", models.DocumentKindPatent)
	require.NoError(t, err)

	assert.NotEqual(t, standard, patent)
	assert.Contains(t, patent, "权利要求")
}

func TestRegisterFamilyAddsKind(t *testing.T) {
	c := NewCatalog()
	c.RegisterFamily("guide", map[models.UseCase]Template{
		models.UseCaseScope: func(topic string) string { return "guide:" + topic },
	})

	got, err := c.Render(models.UseCaseScope, "x", "guide")
	require.NoError(t, err)
	assert.Equal(t, "guide:x", got)

	_, err = c.Render(models.UseCaseDefinitions, "x", "guide")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	assert.Contains(t, c.Kinds(), models.DocumentKind("guide"))
}

func TestRenderReviewAppendsContent(t *testing.T) {
	c := NewCatalog()
	got := c.RenderReview("1 范围\n本标准规定了……")

	assert.True(t, strings.HasSuffix(got, "请审核以下文档内容:\n\n1 范围\n本标准规定了……"))
	for _, name := range models.CheckNames {
		assert.Contains(t, got, string(name))
	}
}

func TestRenderRewrite(t *testing.T) {
	c := NewCatalog()
	got, err := c.RenderRewrite("更正式", "这个东西很好用")
	require.NoError(t, err)
	assert.Equal(t, "请根据以下要求重写这段文本：\n要求: \"更正式\"\n原始文本: \"这个东西很好用\"", got)

	_, err = c.RenderRewrite("", "text")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
	_, err = c.RenderRewrite("inst", "")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestRenderAsk(t *testing.T) {
	c := NewCatalog()
	got, err := c.RenderAsk("什么是规范性引用文件？")
	require.NoError(t, err)
	assert.Contains(t, got, "用户的问题是：什么是规范性引用文件？")

	_, err = c.RenderAsk(" ")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}
