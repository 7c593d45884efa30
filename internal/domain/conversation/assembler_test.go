package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"standard-ai/internal/domain/models"
)

func TestBuildEmpty(t *testing.T) {
	got := Build(nil, "")

	assert.Equal(t, []models.Message{
		{Role: models.RoleSystem, Content: "You are a helpful assistant."},
	}, got)
}

func TestBuildWithFileContext(t *testing.T) {
	history := []models.ChatTurn{
		{Role: models.RoleUser, Text: "A"},
		{Role: models.RoleAssistant, Text: "B"},
	}

	got := Build(history, "f123")

	assert.Equal(t, []models.Message{
		{Role: models.RoleSystem, Content: "You are a helpful assistant."},
		{Role: models.RoleSystem, Content: "fileid://f123"},
		{Role: models.RoleUser, Content: "A"},
		{Role: models.RoleAssistant, Content: "B"},
	}, got)
}

func TestBuildDropsOtherRoles(t *testing.T) {
	history := []models.ChatTurn{
		{Role: models.RoleSystem, Text: "文件已上传成功"},
		{Role: models.RoleUser, Text: "Q1"},
		{Role: "info", Text: "banner"},
		{Role: models.RoleAssistant, Text: "A1"},
		{Role: "", Text: "empty role"},
		{Role: models.RoleUser, Text: "Q2"},
	}

	got := Build(history, "")

	assert.Equal(t, []models.Message{
		{Role: models.RoleSystem, Content: "You are a helpful assistant."},
		{Role: models.RoleUser, Content: "Q1"},
		{Role: models.RoleAssistant, Content: "A1"},
		{Role: models.RoleUser, Content: "Q2"},
	}, got)
}

func TestBuildKeepsDuplicatesAndOrder(t *testing.T) {
	history := []models.ChatTurn{
		{Role: models.RoleUser, Text: "same"},
		{Role: models.RoleUser, Text: "same"},
		{Role: models.RoleAssistant, Text: "x"},
	}

	got := Build(history, "")

	assert.Len(t, got, 4)
	assert.Equal(t, "same", got[1].Content)
	assert.Equal(t, "same", got[2].Content)
	assert.Equal(t, models.RoleAssistant, got[3].Role)
}

func TestBuildIdempotent(t *testing.T) {
	history := []models.ChatTurn{
		{Role: models.RoleUser, Text: "A"},
		{Role: "system", Text: "ignored"},
	}

	assert.Equal(t, Build(history, "ref"), Build(history, "ref"))
}

func TestBuildInjectsFileContextOnce(t *testing.T) {
	history := []models.ChatTurn{
		{Role: models.RoleUser, Text: "fileid://other"},
	}

	got := Build(history, "abc")

	count := 0
	for _, m := range got {
		if m.Role == models.RoleSystem && m.Content == "fileid://abc" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, models.RoleSystem, got[1].Role)
}
