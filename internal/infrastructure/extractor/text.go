package extractor

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"standard-ai/internal/domain/models"
)

// decode 检测并解码文本：UTF-8 BOM、UTF-16 BOM、UTF-8，最后尝试 GBK
func (e *Extractor) decode(content []byte) string {
	switch {
	case bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}):
		return string(content[3:])
	case bytes.HasPrefix(content, []byte{0xFF, 0xFE}):
		if s, err := decodeWith(content, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)); err == nil {
			return s
		}
	case bytes.HasPrefix(content, []byte{0xFE, 0xFF}):
		if s, err := decodeWith(content, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)); err == nil {
			return s
		}
	}

	if utf8.Valid(content) {
		return string(content)
	}

	if e.cfg.DetectGBK {
		if s, err := decodeWith(content, simplifiedchinese.GBK); err == nil {
			return s
		}
	}
	return strings.ToValidUTF8(string(content), "�")
}

func decodeWith(content []byte, enc encoding.Encoding) (string, error) {
	reader := transform.NewReader(bytes.NewReader(content), enc.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// extractHTML 提取 HTML 可见文本，块级元素换行
func extractHTML(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", models.InvalidInputf("malformed html: %v", err)
	}

	var sb strings.Builder
	extractTextFromNode(doc, &sb)
	return strings.TrimSpace(sb.String()), nil
}

func extractTextFromNode(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			sb.WriteString(text)
		}
	}

	if n.Type == html.ElementNode {
		// 跳过 script 和 style 标签
		if n.Data == "script" || n.Data == "style" || n.Data == "head" {
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractTextFromNode(c, sb)
	}

	if n.Type == html.ElementNode && isBlockElement(n.Data) {
		sb.WriteString("\n")
	}
}

// isBlockElement 检查是否为块级元素
func isBlockElement(tag string) bool {
	switch tag {
	case "div", "p", "br", "hr", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "table", "tr", "section", "article", "pre", "blockquote":
		return true
	}
	return false
}
