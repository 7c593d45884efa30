// Package handlers HTTP 接口处理器
package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"standard-ai/internal/app/middleware"
	"standard-ai/internal/domain/models"
	"standard-ai/pkg/status"
)

// APIResponse 统一的API响应格式
type APIResponse struct {
	Success   bool        `json:"success"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorDetail 错误详情。模型服务返回非成功状态时附带上游状态码和响应体。
type ErrorDetail struct {
	Field          string `json:"field,omitempty"`
	Message        string `json:"message"`
	Code           string `json:"code,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamBody   string `json:"upstream_body,omitempty"`
}

// ValidationError 请求参数验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// respondWithSuccess 返回成功响应
func respondWithSuccess(c *gin.Context, httpStatus int, data interface{}, message string) {
	c.JSON(httpStatus, APIResponse{
		Success:   true,
		Code:      int(status.CodeOK),
		Message:   message,
		Data:      data,
		RequestID: middleware.GetRequestID(c),
		Timestamp: time.Now().Unix(),
	})
}

// respondWithError 返回错误响应，HTTP 状态由业务状态码决定
func respondWithError(c *gin.Context, code status.StatusCode, message string, detail *ErrorDetail) {
	response := APIResponse{
		Success:   false,
		Code:      int(code),
		Message:   message,
		RequestID: middleware.GetRequestID(c),
		Timestamp: time.Now().Unix(),
	}
	if detail != nil {
		detail.Code = code.String()
		response.Data = detail
	}
	c.JSON(code.HTTPStatus(), response)
}

// respondWithValidationError 返回参数验证错误
func respondWithValidationError(c *gin.Context, err error) {
	detail := &ErrorDetail{Message: err.Error()}
	var verr *ValidationError
	if errors.As(err, &verr) {
		detail.Field = verr.Field
	}
	respondWithError(c, status.ErrCodeInvalidParam, "请求参数验证失败", detail)
}

// respondWithDomainError 按错误类型返回响应：区分配置缺失、参数错误、上游拒绝和网络故障
func respondWithDomainError(c *gin.Context, message string, err error) {
	code := statusOf(err)
	detail := &ErrorDetail{Message: err.Error()}

	var upstream *models.UpstreamError
	if errors.As(err, &upstream) {
		detail.UpstreamStatus = upstream.StatusCode
		detail.UpstreamBody = upstream.Body
	}

	respondWithError(c, code, message, detail)
}

// statusOf 将领域错误映射为业务状态码
func statusOf(err error) status.StatusCode {
	var upstream *models.UpstreamError
	var transport *models.TransportError

	switch {
	case errors.Is(err, models.ErrMissingCredential):
		return status.ErrCodeMissingCredential
	case errors.Is(err, models.ErrInvalidUseCase), errors.Is(err, models.ErrInvalidInput):
		return status.ErrCodeInvalidParam
	case errors.Is(err, models.ErrNotFound):
		return status.ErrCodeNotFound
	case errors.Is(err, models.ErrStoreUnavailable):
		return status.ErrCodeUnavailable
	case errors.As(err, &upstream):
		return status.ErrCodeUpstream
	case errors.As(err, &transport):
		return status.ErrCodeTransport
	default:
		return status.ErrCodeInternal
	}
}
