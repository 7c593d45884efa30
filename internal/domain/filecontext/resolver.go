// Package filecontext 将用户上传或对象存储中的文档转换为模型服务的文件标识
package filecontext

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/domain/services"
	"standard-ai/pkg/logger"
)

// PurposeFileExtract 文件解析接口的用途标记
const PurposeFileExtract = "file-extract"

// Resolver 文件上下文解析器
type Resolver struct {
	ingestor services.FileIngestor
	store    services.ObjectStore
	cache    services.RefCache
	logger   logger.Logger
}

// NewResolver 创建解析器。store 与 cache 可为 nil：
// 未配置 store 时 FromStore 返回 ErrStoreUnavailable，未配置 cache 时每次都上传。
func NewResolver(ingestor services.FileIngestor, store services.ObjectStore, cache services.RefCache, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Resolver{
		ingestor: ingestor,
		store:    store,
		cache:    cache,
		logger:   log,
	}
}

// FromUpload 直接上传路径
func (r *Resolver) FromUpload(ctx context.Context, filename string, data []byte) (models.FileContextRef, error) {
	return r.ingest(ctx, filename, data)
}

// FromStore 对象存储路径：先读取对象，再沿用原文件名上传，便于模型服务识别格式
func (r *Resolver) FromStore(ctx context.Context, name string) (models.FileContextRef, error) {
	if strings.TrimSpace(name) == "" {
		return "", models.InvalidInputf("filename is required")
	}
	if r.store == nil {
		return "", models.ErrStoreUnavailable
	}

	data, err := r.store.Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("fetch %q from store: %w", name, err)
	}
	return r.ingest(ctx, name, data)
}

// ingest 两条路径共用的上传步骤
func (r *Resolver) ingest(ctx context.Context, filename string, data []byte) (models.FileContextRef, error) {
	if strings.TrimSpace(filename) == "" {
		return "", models.InvalidInputf("filename is required")
	}
	if len(data) == 0 {
		return "", models.InvalidInputf("file %q is empty", filename)
	}

	key := contentKey(filename, data)
	ctx = logger.InjectFields(ctx, logger.Fields{"filename": filename, "content_key": key[:12]})

	if r.cache != nil {
		ref, ok, err := r.cache.Get(ctx, key)
		switch {
		case err != nil:
			r.logger.WarnContext(ctx, "读取文件标识缓存失败", "error", err)
		case ok:
			r.logger.DebugContext(ctx, "文件标识缓存命中", "file_ref", ref)
			return ref, nil
		}
	}

	ref, err := r.ingestor.UploadFile(ctx, filename, data, PurposeFileExtract)
	if err != nil {
		return "", fmt.Errorf("ingest %q: %w", filename, err)
	}
	r.logger.InfoContext(ctx, "文件已上传至模型服务", "file_ref", ref, "size", len(data))

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, ref); err != nil {
			r.logger.WarnContext(ctx, "写入文件标识缓存失败", "error", err)
		}
	}
	return ref, nil
}

// contentKey 文件名与内容的摘要，同名同内容的文件共享同一个文件标识
func contentKey(filename string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(filename))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
