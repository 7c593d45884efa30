// Package config 定义 Eino 框架的配置结构
package config

// EinoConfig Eino 框架的总配置结构。
// 包含审核、生成、对话三条流水线的参数，以及回调系统的配置。
type EinoConfig struct {
	Review     ReviewConfig     `yaml:"review"`
	Generation GenerationConfig `yaml:"generation"`
	Chat       ChatConfig       `yaml:"chat"`
	Callbacks  CallbacksConfig  `yaml:"callbacks"`
}

// ReviewConfig 定义审核流程（Review Chain）的配置。
type ReviewConfig struct {
	// 应用模式参数覆盖，与默认参数按键合并
	Parameters map[string]interface{} `yaml:"parameters"`
}

// GenerationConfig 定义条款生成、改写和单轮问答流程的配置。
type GenerationConfig struct {
	// AskMaxTokens 单轮问答的 max_tokens
	AskMaxTokens int `yaml:"ask_max_tokens"`
}

// ChatConfig 定义对话流程（Chat Chain）的配置。
type ChatConfig struct {
	// Model 对话模型，空值使用 llm.chat_model
	Model string `yaml:"model"`
}

// CallbacksConfig 定义 Eino 框架的回调系统配置。
type CallbacksConfig struct {
	Logging LoggingCallbackConfig `yaml:"logging"`
	Metrics MetricsCallbackConfig `yaml:"metrics"`
}

// LoggingCallbackConfig 定义日志回调的配置。
type LoggingCallbackConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
}

// MetricsCallbackConfig 定义指标监控回调的配置。
type MetricsCallbackConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// DefaultEinoConfig 创建并返回一个包含默认值的 EinoConfig 对象。
func DefaultEinoConfig() *EinoConfig {
	return &EinoConfig{
		Review: ReviewConfig{
			Parameters: map[string]interface{}{},
		},
		Generation: GenerationConfig{
			AskMaxTokens: 1000,
		},
		Callbacks: CallbacksConfig{
			Logging: LoggingCallbackConfig{
				Enabled: true,
				Level:   "info",
			},
			Metrics: MetricsCallbackConfig{
				Enabled:  true,
				Endpoint: "/api/ai/metrics",
			},
		},
	}
}
