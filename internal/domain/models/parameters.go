package models

const (
	// ParamMaxTokens 最大生成 token 数
	ParamMaxTokens = "max_tokens"
	// ParamTemperature 采样温度
	ParamTemperature = "temperature"

	DefaultMaxTokens   = 1500
	DefaultTemperature = 0.7
)

// Parameters 应用模式的生成参数
type Parameters map[string]interface{}

// DefaultParameters 返回应用模式的默认参数
func DefaultParameters() Parameters {
	return Parameters{
		ParamMaxTokens:   DefaultMaxTokens,
		ParamTemperature: DefaultTemperature,
	}
}

// MergeParameters 浅合并参数，后面的参数按键覆盖前面的参数，入参不会被修改
func MergeParameters(layers ...Parameters) Parameters {
	merged := Parameters{}
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}
