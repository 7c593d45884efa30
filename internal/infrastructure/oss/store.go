// Package oss 基于阿里云 OSS 的对象存储实现
package oss

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"

	"standard-ai/internal/domain/models"
	"standard-ai/pkg/logger"
)

const listPageSize = 1000

// Config OSS 连接配置
type Config struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
}

// bucket *alioss.Bucket 中用到的方法
type bucket interface {
	GetObject(objectKey string, options ...alioss.Option) (io.ReadCloser, error)
	PutObject(objectKey string, reader io.Reader, options ...alioss.Option) error
	ListObjectsV2(options ...alioss.Option) (alioss.ListObjectsResultV2, error)
	SignURL(objectKey string, method alioss.HTTPMethod, expiredInSec int64, options ...alioss.Option) (string, error)
}

// Store 对象存储
type Store struct {
	bucket bucket
	logger logger.Logger
}

// NewStore 创建 OSS 客户端并打开 Bucket
func NewStore(cfg Config, log logger.Logger) (*Store, error) {
	client, err := alioss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("create oss client: %w", err)
	}

	b, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("open oss bucket %q: %w", cfg.Bucket, err)
	}

	return newStore(b, log), nil
}

func newStore(b bucket, log logger.Logger) *Store {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Store{bucket: b, logger: log}
}

// Get 读取对象内容，对象不存在时返回 models.ErrNotFound
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	body, err := s.bucket.GetObject(name, alioss.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("object %q: %w", name, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get object %q: %w", name, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", name, err)
	}

	s.logger.DebugContext(ctx, "读取对象", "name", name, "bytes", len(data))
	return data, nil
}

// List 分页列出全部对象名，search 非空时按不区分大小写的子串过滤
func (s *Store) List(ctx context.Context, search string) ([]string, error) {
	needle := strings.ToLower(unescape(search))

	names := []string{}
	token := ""
	for {
		opts := []alioss.Option{alioss.MaxKeys(listPageSize), alioss.WithContext(ctx)}
		if token != "" {
			opts = append(opts, alioss.ContinuationToken(token))
		}

		result, err := s.bucket.ListObjectsV2(opts...)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}

		for _, obj := range result.Objects {
			if needle == "" || strings.Contains(strings.ToLower(unescape(obj.Key)), needle) {
				names = append(names, obj.Key)
			}
		}

		if !result.IsTruncated || result.NextContinuationToken == "" {
			break
		}
		token = result.NextContinuationToken
	}

	s.logger.DebugContext(ctx, "列出对象", "search", search, "count", len(names))
	return names, nil
}

// Put 写入对象，同名覆盖
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := s.bucket.PutObject(name, bytes.NewReader(data), alioss.WithContext(ctx)); err != nil {
		return fmt.Errorf("put object %q: %w", name, err)
	}
	s.logger.InfoContext(ctx, "对象已写入", "name", name, "bytes", len(data))
	return nil
}

// SignURL 生成以附件形式下载的临时地址
func (s *Store) SignURL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	disposition := fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`,
		strings.ReplaceAll(name, `"`, ""), url.PathEscape(name))

	signed, err := s.bucket.SignURL(name, alioss.HTTPGet, int64(expiry/time.Second),
		alioss.ResponseContentDisposition(disposition))
	if err != nil {
		return "", fmt.Errorf("sign url for %q: %w", name, err)
	}
	s.logger.DebugContext(ctx, "生成下载地址", "name", name, "expiry", expiry)
	return signed, nil
}

// isNotFound 判断 OSS 错误是否为对象不存在
func isNotFound(err error) bool {
	var svcErr alioss.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.StatusCode == http.StatusNotFound || svcErr.Code == "NoSuchKey"
	}
	var svcErrPtr *alioss.ServiceError
	if errors.As(err, &svcErrPtr) {
		return svcErrPtr.StatusCode == http.StatusNotFound || svcErrPtr.Code == "NoSuchKey"
	}
	return false
}

// unescape 对象名和搜索词可能经过 URL 编码，解码失败时保留原文
func unescape(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	return s
}
