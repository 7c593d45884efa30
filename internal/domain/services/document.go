package services

import (
	"context"
	"time"

	"standard-ai/internal/domain/models"
)

// TextExtractor 文本抽取接口，将文档字节转换为纯文本
type TextExtractor interface {
	// Extract 按格式标记抽取文本，format 为 docx、txt、md、html 等
	Extract(ctx context.Context, data []byte, format string) (string, error)
}

// ObjectStore 对象存储接口
type ObjectStore interface {
	// Get 读取对象，不存在时返回 models.ErrNotFound
	Get(ctx context.Context, name string) ([]byte, error)

	// List 列出对象名，search 非空时按不区分大小写的子串过滤
	List(ctx context.Context, search string) ([]string, error)

	// Put 写入对象
	Put(ctx context.Context, name string, data []byte) error

	// SignURL 生成带下载文件名的临时访问地址
	SignURL(ctx context.Context, name string, expiry time.Duration) (string, error)
}

// RefCache 文件标识缓存接口，按内容摘要缓存模型服务签发的文件标识
type RefCache interface {
	// Get 读取缓存，未命中时返回 ok=false
	Get(ctx context.Context, key string) (ref models.FileContextRef, ok bool, err error)

	// Set 写入缓存
	Set(ctx context.Context, key string, ref models.FileContextRef) error
}
