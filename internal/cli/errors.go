package cli

import (
	"errors"
	"fmt"

	"standard-ai/internal/domain/models"
)

// describe 将领域错误转换为带处理提示的文本
func describe(err error) string {
	var upstream *models.UpstreamError
	var transport *models.TransportError

	switch {
	case errors.Is(err, models.ErrMissingCredential):
		return fmt.Sprintf("%v (set DASHSCOPE_API_KEY)", err)
	case errors.Is(err, models.ErrStoreUnavailable):
		return fmt.Sprintf("%v (set OSS_BUCKET and OSS credentials)", err)
	case errors.As(err, &upstream):
		return fmt.Sprintf("model service rejected the request with status %d: %s", upstream.StatusCode, upstream.Body)
	case errors.As(err, &transport):
		return fmt.Sprintf("cannot reach model service: %v", transport.Err)
	default:
		return err.Error()
	}
}
