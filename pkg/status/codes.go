package status

import "net/http"

// StatusCode 统一的业务状态码类型
// 0 表示成功，其余为错误状态

type StatusCode int

const (
	// CodeOK 成功
	CodeOK StatusCode = 0

	// ErrCodeInvalidParam 参数错误（含非法用例、空字段）
	ErrCodeInvalidParam StatusCode = 1001
	// ErrCodeInternal 内部错误
	ErrCodeInternal StatusCode = 1002
	// ErrCodeUnavailable 服务不可用（如未配置对象存储）
	ErrCodeUnavailable StatusCode = 1003
	// ErrCodeNotFound 资源不存在
	ErrCodeNotFound StatusCode = 1004
	// ErrCodeMissingCredential 未配置模型服务凭证
	ErrCodeMissingCredential StatusCode = 1005
	// ErrCodeUpstream 模型服务返回非成功状态
	ErrCodeUpstream StatusCode = 1006
	// ErrCodeTransport 无法连接模型服务
	ErrCodeTransport StatusCode = 1007
)

// String 将状态码转换为字符串标识
func (c StatusCode) String() string {
	switch c {
	case CodeOK:
		return "OK"
	case ErrCodeInvalidParam:
		return "INVALID_PARAM"
	case ErrCodeInternal:
		return "INTERNAL_ERROR"
	case ErrCodeUnavailable:
		return "UNAVAILABLE"
	case ErrCodeNotFound:
		return "NOT_FOUND"
	case ErrCodeMissingCredential:
		return "MISSING_CREDENTIAL"
	case ErrCodeUpstream:
		return "UPSTREAM_ERROR"
	case ErrCodeTransport:
		return "TRANSPORT_ERROR"
	default:
		return "UNKNOWN"
	}
}

// HTTPStatus 返回状态码对应的 HTTP 状态
func (c StatusCode) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case ErrCodeInvalidParam:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnavailable, ErrCodeTransport:
		return http.StatusServiceUnavailable
	case ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
