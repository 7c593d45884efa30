package dashscope

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"standard-ai/internal/domain/models"
)

// UploadFile 上传文件至文件解析接口，返回文件标识
func (c *Client) UploadFile(ctx context.Context, filename string, data []byte, purpose string) (models.FileContextRef, error) {
	const op = "file upload"
	if err := c.checkCredential(op); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.WriteField("purpose", purpose); err != nil {
		return "", fmt.Errorf("write purpose field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+filesPath, &buf)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	status, body, err := c.do(ctx, op, req)
	if err != nil {
		return "", err
	}

	var resp fileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", undecodable(status, body, err)
	}
	if resp.ID == "" {
		return "", undecodable(status, body, errors.New("missing file id"))
	}

	c.logger.InfoContext(ctx, "文件上传成功", "filename", filename, "file_id", resp.ID, "bytes", len(data))
	return models.FileContextRef(resp.ID), nil
}
