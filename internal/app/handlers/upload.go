package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// DocumentField 上传文档使用的表单字段名
const DocumentField = "document"

// uploadedFile 读入内存的上传文件
type uploadedFile struct {
	Name string
	Data []byte
}

// readUpload 读取 multipart 表单中的文档，maxSize 为 0 时不限制大小
func readUpload(c *gin.Context, maxSize int64) (*uploadedFile, error) {
	header, err := c.FormFile(DocumentField)
	if err != nil {
		return nil, &ValidationError{Field: DocumentField, Message: "未上传文件"}
	}
	if maxSize > 0 && header.Size > maxSize {
		return nil, &ValidationError{
			Field:   DocumentField,
			Message: fmt.Sprintf("文件大小 %d 字节超过上限 %d 字节", header.Size, maxSize),
		}
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	return &uploadedFile{Name: cleanFilename(header.Filename), Data: data}, nil
}

// cleanFilename 去掉客户端可能带上的目录部分
func cleanFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	return filepath.Base(strings.TrimSpace(name))
}
