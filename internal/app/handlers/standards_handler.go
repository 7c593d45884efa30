package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/domain/services"
	"standard-ai/internal/infrastructure/extractor"
	"standard-ai/pkg/logger"
)

// StandardsHandler 标准文档库接口：上传、检索、预览和下载
type StandardsHandler struct {
	store         services.ObjectStore
	extractor     services.TextExtractor
	signExpiry    time.Duration
	maxUploadSize int64
	logger        logger.Logger
}

// NewStandardsHandler 创建标准文档库处理器。store 为 nil 时所有接口返回服务不可用。
func NewStandardsHandler(
	store services.ObjectStore,
	textExtractor services.TextExtractor,
	signExpiry time.Duration,
	maxUploadSize int64,
	log logger.Logger,
) *StandardsHandler {
	if signExpiry <= 0 {
		signExpiry = time.Hour
	}
	return &StandardsHandler{
		store:         store,
		extractor:     textExtractor,
		signExpiry:    signExpiry,
		maxUploadSize: maxUploadSize,
		logger:        log,
	}
}

// Upload 上传标准文档，同名覆盖
// POST /api/standards/upload
func (h *StandardsHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	if !h.available(c) {
		return
	}

	file, err := readUpload(c, h.maxUploadSize)
	if err != nil {
		respondWithValidationError(c, err)
		return
	}

	if err := h.store.Put(ctx, file.Name, file.Data); err != nil {
		h.logger.ErrorContext(ctx, "标准文档上传失败", "filename", file.Name, "error", err.Error())
		respondWithDomainError(c, "标准文档上传失败", err)
		return
	}

	respondWithSuccess(c, http.StatusCreated, gin.H{"filename": file.Name}, "File uploaded successfully")
}

// List 列出标准文档，search 按文件名不区分大小写过滤
// GET /api/standards
func (h *StandardsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	if !h.available(c) {
		return
	}

	search := strings.TrimSpace(c.Query("search"))
	names, err := h.store.List(ctx, search)
	if err != nil {
		h.logger.ErrorContext(ctx, "列出标准文档失败", "search", search, "error", err.Error())
		respondWithDomainError(c, "列出标准文档失败", err)
		return
	}

	respondWithSuccess(c, http.StatusOK, names, "查询成功")
}

// Content 返回标准文档的纯文本预览
// GET /api/standards/content/:filename
func (h *StandardsHandler) Content(c *gin.Context) {
	ctx := c.Request.Context()
	if !h.available(c) {
		return
	}

	filename := c.Param("filename")
	data, err := h.store.Get(ctx, filename)
	if err != nil {
		h.logger.WarnContext(ctx, "读取标准文档失败", "filename", filename, "error", err.Error())
		respondWithDomainError(c, "File not found.", err)
		return
	}

	content, err := h.extractor.Extract(ctx, data, extractor.FormatFromFilename(filename))
	if err != nil {
		h.logger.ErrorContext(ctx, "生成预览失败", "filename", filename, "error", err.Error())
		respondWithDomainError(c, "生成预览失败", err)
		return
	}

	respondWithSuccess(c, http.StatusOK, models.DocumentPreview{Type: "text", Content: content}, "预览生成成功")
}

// Download 重定向到带签名的临时下载地址
// GET /api/standards/:filename
func (h *StandardsHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()
	if !h.available(c) {
		return
	}

	filename := c.Param("filename")
	url, err := h.store.SignURL(ctx, filename, h.signExpiry)
	if err != nil {
		h.logger.ErrorContext(ctx, "生成下载地址失败", "filename", filename, "error", err.Error())
		respondWithDomainError(c, "生成下载地址失败", err)
		return
	}

	c.Redirect(http.StatusFound, url)
}

// ListForChat 对话文件选择器使用的文件列表
// GET /api/ai/list-oss-files
func (h *StandardsHandler) ListForChat(c *gin.Context) {
	ctx := c.Request.Context()
	if !h.available(c) {
		return
	}

	names, err := h.store.List(ctx, "")
	if err != nil {
		h.logger.ErrorContext(ctx, "列出存储文件失败", "error", err.Error())
		respondWithDomainError(c, "列出存储文件失败", err)
		return
	}

	respondWithSuccess(c, http.StatusOK, gin.H{"files": names}, "查询成功")
}

func (h *StandardsHandler) available(c *gin.Context) bool {
	if h.store == nil {
		respondWithDomainError(c, "对象存储未配置", models.ErrStoreUnavailable)
		return false
	}
	return true
}
