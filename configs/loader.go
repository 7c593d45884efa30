package configs

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	einoconfig "standard-ai/internal/eino/config"
)

// Load 加载并验证应用程序配置。
// 它按照以下优先级顺序加载配置：
// 1. 默认配置
// 2. 配置文件（config.yaml，支持多个搜索路径）
// 3. 环境变量（覆盖配置文件中的值）
//
// 参数 ctx: 上下文对象。
// 返回加载并验证后的 Config 指针，如果出错则返回 error。
func Load(ctx context.Context) (*Config, error) {
	// 加载 .env 文件（如果存在）
	// 忽略错误，因为 .env 文件是可选的
	_ = godotenv.Load()

	return LoadFrom(ctx, []string{
		"configs/config.yaml",
		"config.yaml",
		"/etc/standard-ai/config.yaml",
	}, os.Getenv)
}

// LoadFrom 从指定的配置文件搜索路径和环境变量读取函数加载配置。
// 使用第一个存在的配置文件，getenv 通常为 os.Getenv。
func LoadFrom(_ context.Context, configPaths []string, getenv func(string) string) (*Config, error) {
	config := DefaultConfig()

	for _, path := range configPaths {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, err
			}
			break
		}
	}

	// 从环境变量覆盖配置
	loadFromEnv(config, getenv)

	// 验证配置
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig 创建并返回一个包含默认值的 Config 对象。
// 默认值覆盖了服务器、模型服务、对象存储、日志和 Eino 框架的常用配置。
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                    "0.0.0.0",
			Port:                    5000,
			ReadTimeout:             60 * time.Second,
			WriteTimeout:            180 * time.Second,
			IdleTimeout:             120 * time.Second,
			GracefulShutdownTimeout: 30 * time.Second,
			MaxUploadSize:           32 << 20,
			CORSAllowOrigins:        []string{"*"},
		},
		LLM: LLMConfig{
			BaseURL:     "https://dashscope.aliyuncs.com",
			AppID:       "523cb9ada1d943ba95f71c8122ffaa69",
			ChatModel:   "qwen-long",
			Timeout:     120 * time.Second,
			MaxTokens:   1500,
			Temperature: 0.7,
		},
		OSS: OSSConfig{
			SignExpiry: time.Hour,
		},
		RefCache: RefCacheConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			TTL:     24 * time.Hour,
			Prefix:  "standard-ai:fileref:",
		},
		Extractor: ExtractorConfig{
			MaxSize:   32 << 20,
			DetectGBK: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stdout",
		},
		Eino: *einoconfig.DefaultEinoConfig(),
	}
}

// loadFromEnv 从环境变量中读取配置并覆盖 Config 中的值。
// 支持 DASHSCOPE_API_KEY, OSS_BUCKET, REDIS_ADDR, STD_AI_PORT 等环境变量。
func loadFromEnv(config *Config, getenv func(string) string) {
	// Server 配置
	if port := getenv("STD_AI_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 && p <= 65535 {
			config.Server.Port = p
		}
	}

	// DashScope 配置
	if apiKey := getenv("DASHSCOPE_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}

	if baseURL := getenv("DASHSCOPE_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = strings.TrimRight(baseURL, "/")
	}

	if appID := getenv("DASHSCOPE_APP_ID"); appID != "" {
		config.LLM.AppID = appID
	}

	if model := getenv("DASHSCOPE_CHAT_MODEL"); model != "" {
		config.LLM.ChatModel = model
	}

	// OSS 配置
	if region := getenv("OSS_REGION"); region != "" {
		config.OSS.Region = region
	}

	if endpoint := getenv("OSS_ENDPOINT"); endpoint != "" {
		config.OSS.Endpoint = endpoint
	}

	if id := getenv("OSS_ACCESS_KEY_ID"); id != "" {
		config.OSS.AccessKeyID = id
	}

	if secret := getenv("OSS_ACCESS_KEY_SECRET"); secret != "" {
		config.OSS.AccessKeySecret = secret
	}

	if bucket := getenv("OSS_BUCKET"); bucket != "" {
		config.OSS.Bucket = bucket
	}

	// Redis 配置，设置地址即启用文件标识缓存
	if addr := getenv("REDIS_ADDR"); addr != "" {
		config.RefCache.Addr = addr
		config.RefCache.Enabled = true
	}

	if password := getenv("REDIS_PASSWORD"); password != "" {
		config.RefCache.Password = password
	}

	// 日志配置
	if level := getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
		config.Eino.Callbacks.Logging.Level = strings.ToLower(level)
	}
}
