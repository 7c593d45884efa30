// Package extractor 文档文本抽取，支持 docx、html 以及各类纯文本编码
package extractor

import (
	"context"
	"path/filepath"
	"strings"

	"standard-ai/internal/domain/models"
	"standard-ai/pkg/logger"
)

// Config 抽取器配置
type Config struct {
	MaxSize   int64 // 最大文档大小（字节），0 表示不限制
	DetectGBK bool  // 非 UTF-8 文本尝试按 GBK 解码
}

// unsupported 无法抽取文本的二进制格式
var unsupported = map[string]bool{
	"doc": true, "pdf": true, "xls": true, "xlsx": true, "ppt": true, "pptx": true,
	"png": true, "jpg": true, "jpeg": true, "zip": true,
}

// Extractor 文本抽取器
type Extractor struct {
	cfg    Config
	logger logger.Logger
}

// New 创建文本抽取器
func New(cfg Config, log logger.Logger) *Extractor {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Extractor{cfg: cfg, logger: log}
}

// FormatFromFilename 由文件名推断格式标记，无扩展名时按 txt 处理
func FormatFromFilename(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return "txt"
	}
	return ext
}

// Extract 按格式标记抽取纯文本
func (e *Extractor) Extract(ctx context.Context, data []byte, format string) (string, error) {
	format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	if len(data) == 0 {
		return "", models.InvalidInputf("document is empty")
	}
	if e.cfg.MaxSize > 0 && int64(len(data)) > e.cfg.MaxSize {
		return "", models.InvalidInputf("document too large: %d bytes (limit %d)", len(data), e.cfg.MaxSize)
	}
	if unsupported[format] {
		return "", models.InvalidInputf("unsupported document format %q", format)
	}

	var (
		text string
		err  error
	)
	switch format {
	case "docx":
		text, err = extractDocx(data)
	case "html", "htm":
		text, err = extractHTML(e.decode(data))
	default:
		text = e.decode(data)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", models.InvalidInputf("document has no extractable text")
	}

	e.logger.DebugContext(ctx, "文本抽取完成", "format", format, "bytes", len(data), "chars", len([]rune(text)))
	return text, nil
}
