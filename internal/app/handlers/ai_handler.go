package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/gin-gonic/gin"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/eino/nodes"
	"standard-ai/internal/infrastructure/extractor"
	"standard-ai/pkg/logger"
)

// FileResolver 将上传文件或存储中的文件转换为模型服务文件标识
type FileResolver interface {
	FromUpload(ctx context.Context, filename string, data []byte) (models.FileContextRef, error)
	FromStore(ctx context.Context, name string) (models.FileContextRef, error)
}

// AIHandler 文档审核、条款生成、改写与对话接口
type AIHandler struct {
	reviewRunner     compose.Runnable[*models.ReviewRequest, *models.ReviewResponse]
	generationRunner compose.Runnable[*nodes.GenerationInput, *nodes.GenerationOutput]
	chatRunner       compose.Runnable[*nodes.ChatInput, *models.ChatCompletion]
	resolver         FileResolver
	maxUploadSize    int64
	logger           logger.Logger
}

// NewAIHandler 创建AI接口处理器
func NewAIHandler(
	reviewRunner compose.Runnable[*models.ReviewRequest, *models.ReviewResponse],
	generationRunner compose.Runnable[*nodes.GenerationInput, *nodes.GenerationOutput],
	chatRunner compose.Runnable[*nodes.ChatInput, *models.ChatCompletion],
	resolver FileResolver,
	maxUploadSize int64,
	log logger.Logger,
) *AIHandler {
	return &AIHandler{
		reviewRunner:     reviewRunner,
		generationRunner: generationRunner,
		chatRunner:       chatRunner,
		resolver:         resolver,
		maxUploadSize:    maxUploadSize,
		logger:           log,
	}
}

// GenerateClauseRequest 条款生成请求
type GenerateClauseRequest struct {
	Topic        string `json:"topic"`
	ClauseType   string `json:"clauseType"`
	DocumentKind string `json:"documentKind,omitempty"`
}

// RewriteRequest 改写请求
type RewriteRequest struct {
	SelectedText  string `json:"selectedText"`
	RewritePrompt string `json:"rewritePrompt"`
}

// AskRequest 单轮问答请求
type AskRequest struct {
	Message string `json:"message"`
}

// TranscriptTurn 前端对话记录中的一条。
// 旧版前端只传 sender，ai 表示助手。
type TranscriptTurn struct {
	ID     string `json:"id,omitempty"`
	Role   string `json:"role,omitempty"`
	Sender string `json:"sender,omitempty"`
	Text   string `json:"text"`
}

// ChatRequest 上下文对话请求
type ChatRequest struct {
	ConversationHistory []TranscriptTurn `json:"conversationHistory"`
	FileID              string           `json:"fileId,omitempty"`
}

// SelectFileRequest 选择存储文件作为对话上下文
type SelectFileRequest struct {
	Filename string `json:"filename"`
}

// ReviewDocument 上传文档并审核
// POST /api/upload
func (h *AIHandler) ReviewDocument(c *gin.Context) {
	ctx := c.Request.Context()

	file, err := readUpload(c, h.maxUploadSize)
	if err != nil {
		h.logger.WarnContext(ctx, "审核文档读取失败", "error", err.Error())
		respondWithValidationError(c, err)
		return
	}

	h.logger.InfoContext(ctx, "开始审核文档", "file_name", file.Name, "bytes", len(file.Data))

	startTime := time.Now()
	resp, err := h.reviewRunner.Invoke(ctx, &models.ReviewRequest{
		Data:     file.Data,
		Format:   extractor.FormatFromFilename(file.Name),
		FileName: file.Name,
	})
	duration := time.Since(startTime).Milliseconds()
	if err != nil {
		h.logger.ErrorContext(ctx, "文档审核失败", "file_name", file.Name, "duration_ms", duration, "error", err.Error())
		respondWithDomainError(c, "文档审核失败", err)
		return
	}

	h.logger.InfoContext(ctx, "文档审核完成",
		"file_name", file.Name,
		"degraded", resp.Result.Degraded(),
		"duration_ms", duration)

	respondWithSuccess(c, http.StatusOK, resp, "文件已上传并完成审核")
}

// GenerateClause 按用例生成条款
// POST /api/ai/generate-clause
func (h *AIHandler) GenerateClause(c *gin.Context) {
	var req GenerateClauseRequest
	if !h.bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.Topic) == "" || strings.TrimSpace(req.ClauseType) == "" {
		respondWithValidationError(c, &ValidationError{Field: "topic", Message: "topic 和 clauseType 不能为空"})
		return
	}

	h.generate(c, &nodes.GenerationInput{
		Task: nodes.TaskClause,
		Spec: models.PromptSpec{
			UseCase:      models.UseCase(req.ClauseType),
			DocumentKind: models.DocumentKind(req.DocumentKind),
			Topic:        req.Topic,
		},
	}, "generatedText", "条款生成失败")
}

// Rewrite 按要求改写选中文本
// POST /api/ai/rewrite
func (h *AIHandler) Rewrite(c *gin.Context) {
	var req RewriteRequest
	if !h.bind(c, &req) {
		return
	}

	h.generate(c, &nodes.GenerationInput{
		Task:         nodes.TaskRewrite,
		SelectedText: req.SelectedText,
		Instruction:  req.RewritePrompt,
	}, "rewrittenText", "文本改写失败")
}

// Ask 单轮专家问答
// POST /api/ai/ask
func (h *AIHandler) Ask(c *gin.Context) {
	var req AskRequest
	if !h.bind(c, &req) {
		return
	}

	h.generate(c, &nodes.GenerationInput{
		Task:     nodes.TaskAsk,
		Question: req.Message,
	}, "response", "问答失败")
}

// Chat 带历史记录和可选文件上下文的对话
// POST /api/ai/chat
func (h *AIHandler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChatRequest
	if !h.bind(c, &req) {
		return
	}
	if len(req.ConversationHistory) == 0 {
		respondWithValidationError(c, &ValidationError{Field: "conversationHistory", Message: "对话记录不能为空"})
		return
	}

	input := &nodes.ChatInput{
		History: toChatTurns(req.ConversationHistory),
		FileRef: models.FileContextRef(strings.TrimSpace(req.FileID)),
	}

	startTime := time.Now()
	reply, err := h.chatRunner.Invoke(ctx, input)
	duration := time.Since(startTime).Milliseconds()
	if err != nil {
		h.logger.ErrorContext(ctx, "对话失败", "file_id", req.FileID, "duration_ms", duration, "error", err.Error())
		respondWithDomainError(c, "对话失败", err)
		return
	}

	h.logger.InfoContext(ctx, "对话完成",
		"turns", len(input.History),
		"with_file", input.FileRef != "",
		"duration_ms", duration)

	respondWithSuccess(c, http.StatusOK, gin.H{"response": reply.Text, "usage": reply.Usage}, "对话完成")
}

// UploadForChat 上传文件作为对话上下文
// POST /api/ai/upload-for-chat
func (h *AIHandler) UploadForChat(c *gin.Context) {
	ctx := c.Request.Context()

	file, err := readUpload(c, h.maxUploadSize)
	if err != nil {
		respondWithValidationError(c, err)
		return
	}

	ref, err := h.resolver.FromUpload(ctx, file.Name, file.Data)
	if err != nil {
		h.logger.ErrorContext(ctx, "上传对话文件失败", "file_name", file.Name, "error", err.Error())
		respondWithDomainError(c, "上传对话文件失败", err)
		return
	}

	h.logger.InfoContext(ctx, "对话文件已上传", "file_name", file.Name, "file_id", ref)
	respondWithSuccess(c, http.StatusOK, gin.H{"fileId": ref}, "文件已上传")
}

// SelectStoredFile 选择存储中的文件作为对话上下文
// POST /api/ai/select-oss-file
func (h *AIHandler) SelectStoredFile(c *gin.Context) {
	ctx := c.Request.Context()

	var req SelectFileRequest
	if !h.bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.Filename) == "" {
		respondWithValidationError(c, &ValidationError{Field: "filename", Message: "filename 不能为空"})
		return
	}

	ref, err := h.resolver.FromStore(ctx, req.Filename)
	if err != nil {
		h.logger.ErrorContext(ctx, "选择存储文件失败", "filename", req.Filename, "error", err.Error())
		respondWithDomainError(c, "选择存储文件失败", err)
		return
	}

	h.logger.InfoContext(ctx, "存储文件已选为对话上下文", "filename", req.Filename, "file_id", ref)
	respondWithSuccess(c, http.StatusOK, gin.H{"fileId": ref, "filename": req.Filename}, "文件已选择")
}

func (h *AIHandler) generate(c *gin.Context, input *nodes.GenerationInput, field, failure string) {
	ctx := c.Request.Context()

	startTime := time.Now()
	out, err := h.generationRunner.Invoke(ctx, input)
	duration := time.Since(startTime).Milliseconds()
	if err != nil {
		h.logger.ErrorContext(ctx, failure, "task", input.Task, "duration_ms", duration, "error", err.Error())
		respondWithDomainError(c, failure, err)
		return
	}

	h.logger.InfoContext(ctx, "文本生成完成", "task", input.Task, "chars", len([]rune(out.Text)), "duration_ms", duration)
	respondWithSuccess(c, http.StatusOK, gin.H{field: out.Text}, "生成完成")
}

func (h *AIHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.WarnContext(c.Request.Context(), "请求参数解析失败", "error", err.Error())
		respondWithValidationError(c, &ValidationError{Message: "请求参数格式错误: " + err.Error()})
		return false
	}
	return true
}

// toChatTurns 转换前端对话记录。未知角色原样保留，由消息组装时过滤。
func toChatTurns(transcript []TranscriptTurn) []models.ChatTurn {
	turns := make([]models.ChatTurn, 0, len(transcript))
	for _, t := range transcript {
		role := t.Role
		if role == "" {
			role = t.Sender
		}
		if role == "ai" {
			role = string(models.RoleAssistant)
		}
		turns = append(turns, models.ChatTurn{Role: models.Role(role), Text: t.Text})
	}
	return turns
}
