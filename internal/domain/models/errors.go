package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential 未配置模型服务凭证，在发起网络请求前返回
	ErrMissingCredential = errors.New("missing llm credential")

	// ErrInvalidUseCase 用例不在合法集合内
	ErrInvalidUseCase = errors.New("invalid use case")

	// ErrInvalidInput 必填字段为空或取值非法
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound 引用的存储对象不存在
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable 未配置对象存储
	ErrStoreUnavailable = errors.New("object store not configured")
)

// UpstreamError 模型服务返回了非成功状态
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError 无法到达模型服务（超时、DNS、连接重置等）
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// InvalidInputf 构造包装 ErrInvalidInput 的错误
func InvalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
