package models

// Role 消息角色
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn 调用方提供的一轮对话，服务端不保存
type ChatTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// FileContextRef 模型服务文件解析接口返回的文件标识
type FileContextRef string

// Message 发送给对话接口的消息
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Usage token 用量
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatCompletion 对话接口的回复
type ChatCompletion struct {
	Text  string `json:"text"`
	Usage *Usage `json:"usage,omitempty"`
}

// StoredFile 对象存储中的文件
type StoredFile struct {
	Name string
	Data []byte
}

// DocumentPreview 标准文档预览内容
type DocumentPreview struct {
	Type    string `json:"type"` // text
	Content string `json:"content"`
}
