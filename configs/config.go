package configs

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	einoconfig "standard-ai/internal/eino/config"
)

// Config 主配置结构体，定义了应用程序的所有配置项。
// 在 main 中构建一次，通过构造函数传入各组件，组件不读取进程环境。
type Config struct {
	Server    ServerConfig          `yaml:"server"`
	LLM       LLMConfig             `yaml:"llm"`
	OSS       OSSConfig             `yaml:"oss"`
	RefCache  RefCacheConfig        `yaml:"ref_cache"`
	Extractor ExtractorConfig       `yaml:"extractor"`
	Logging   LoggingConfig         `yaml:"logging"`
	Eino      einoconfig.EinoConfig `yaml:"eino"` // Eino 框架配置
}

// ServerConfig 定义服务器相关的配置参数。
// 包含监听地址、端口、超时设置和上传大小限制等。
type ServerConfig struct {
	Host                    string        `yaml:"host"`
	Port                    int           `yaml:"port"`
	ReadTimeout             time.Duration `yaml:"read_timeout"`
	WriteTimeout            time.Duration `yaml:"write_timeout"`
	IdleTimeout             time.Duration `yaml:"idle_timeout"`
	GracefulShutdownTimeout time.Duration `yaml:"graceful_shutdown_timeout"`
	MaxUploadSize           int64         `yaml:"max_upload_size"` // 字节
	CORSAllowOrigins        []string      `yaml:"cors_allow_origins"`
}

// LLMConfig 定义模型服务（DashScope）的配置参数。
// APIKey 可以为空，缺失时每次调用返回 MissingCredential，而不是启动失败。
type LLMConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	AppID       string        `yaml:"app_id"`
	ChatModel   string        `yaml:"chat_model"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
}

// OSSConfig 定义对象存储的配置参数。
// Bucket 为空时视为未配置，存储相关接口返回服务不可用。
type OSSConfig struct {
	Region          string        `yaml:"region"`
	Endpoint        string        `yaml:"endpoint"`
	AccessKeyID     string        `yaml:"access_key_id"`
	AccessKeySecret string        `yaml:"access_key_secret"`
	Bucket          string        `yaml:"bucket"`
	SignExpiry      time.Duration `yaml:"sign_expiry"`
}

// RefCacheConfig 定义文件标识缓存（Redis）的配置参数。
type RefCacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Prefix   string        `yaml:"prefix"`
}

// ExtractorConfig 定义文本抽取的配置参数。
type ExtractorConfig struct {
	MaxSize   int64 `yaml:"max_size"`   // 单个文档最大字节数
	DetectGBK bool  `yaml:"detect_gbk"` // 非 UTF-8 文本按 GBK 解码
}

// LoggingConfig 定义日志系统的配置参数。
// 包含日志级别、输出目标（stdout/file）和格式（text/json）。
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
	Format   string `yaml:"format"`
}

// Validate 检查 Config 配置结构体的有效性。
// 依次调用各个子配置项的 Validate 方法，如果发现无效配置，返回相应的错误。
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm config validation failed: %w", err)
	}

	if err := c.OSS.Validate(); err != nil {
		return fmt.Errorf("oss config validation failed: %w", err)
	}

	if err := c.RefCache.Validate(); err != nil {
		return fmt.Errorf("ref_cache config validation failed: %w", err)
	}

	if err := c.Extractor.Validate(); err != nil {
		return fmt.Errorf("extractor config validation failed: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

// Validate 检查 ServerConfig 配置的有效性。
// 确保端口号在有效范围内，且超时设置和上传限制为正数。
func (s *ServerConfig) Validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("invalid port: %d", s.Port)
	}

	if s.ReadTimeout <= 0 {
		return fmt.Errorf("read_timeout must be positive")
	}

	if s.WriteTimeout <= 0 {
		return fmt.Errorf("write_timeout must be positive")
	}

	if s.MaxUploadSize <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}

	return nil
}

// Validate 检查 LLMConfig 配置的有效性。
// 不检查 APIKey，凭证缺失在调用时报告。
func (l *LLMConfig) Validate() error {
	if l.BaseURL == "" {
		return fmt.Errorf("llm base_url is required")
	}

	u, err := url.Parse(l.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid llm base_url: %s", l.BaseURL)
	}

	if l.ChatModel == "" {
		return fmt.Errorf("llm chat_model is required")
	}

	if l.Timeout <= 0 {
		return fmt.Errorf("llm timeout must be positive")
	}

	if l.MaxTokens <= 0 {
		return fmt.Errorf("llm max_tokens must be positive")
	}

	return nil
}

// HasCredential 是否配置了 API Key
func (l *LLMConfig) HasCredential() bool {
	return strings.TrimSpace(l.APIKey) != ""
}

// Validate 检查 OSSConfig 配置的有效性。
// 未配置 Bucket 时跳过；配置了 Bucket 则要求访问密钥和 Region/Endpoint 其一。
func (o *OSSConfig) Validate() error {
	if !o.Enabled() {
		return nil
	}

	if o.AccessKeyID == "" || o.AccessKeySecret == "" {
		return fmt.Errorf("oss access_key_id and access_key_secret are required when bucket is set")
	}

	if o.Region == "" && o.Endpoint == "" {
		return fmt.Errorf("oss region or endpoint is required when bucket is set")
	}

	if o.SignExpiry <= 0 {
		return fmt.Errorf("oss sign_expiry must be positive")
	}

	return nil
}

// Enabled 是否配置了对象存储
func (o *OSSConfig) Enabled() bool {
	return o.Bucket != ""
}

// GetEndpoint 获取 OSS 访问地址。
// 未显式配置时由 Region 推导，如 oss-cn-hangzhou -> https://oss-cn-hangzhou.aliyuncs.com。
func (o *OSSConfig) GetEndpoint() string {
	if o.Endpoint != "" {
		return o.Endpoint
	}
	return fmt.Sprintf("https://%s.aliyuncs.com", o.Region)
}

// Validate 检查 RefCacheConfig 配置的有效性。
func (r *RefCacheConfig) Validate() error {
	if !r.Enabled {
		return nil
	}

	if r.Addr == "" {
		return fmt.Errorf("ref_cache addr is required when enabled")
	}

	if r.TTL <= 0 {
		return fmt.Errorf("ref_cache ttl must be positive")
	}

	return nil
}

// Validate 检查 ExtractorConfig 配置的有效性。
func (e *ExtractorConfig) Validate() error {
	if e.MaxSize <= 0 {
		return fmt.Errorf("extractor max_size must be positive")
	}
	return nil
}

// Validate 检查 LoggingConfig 配置的有效性。
// 确保日志级别、输出目标和格式有效，如果输出到文件，确保文件路径已指定。
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}

	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	validOutputs := map[string]bool{
		"stdout": true, "stderr": true, "file": true,
	}

	if !validOutputs[l.Output] {
		return fmt.Errorf("invalid log output: %s", l.Output)
	}

	if l.Output == "file" && l.FilePath == "" {
		return fmt.Errorf("file path is required when output is file")
	}

	// 验证日志格式，空值默认为 text
	validFormats := map[string]bool{
		"text": true, "json": true, "": true,
	}

	if !validFormats[l.Format] {
		return fmt.Errorf("invalid log format: %s", l.Format)
	}

	return nil
}

// GetAddr 获取服务器的完整监听地址。
// 返回格式为 "Host:Port" 的字符串。
func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
