package config

type OpenAIConfig struct {
	APIKey string `env:"OPENAI_API_KEY"`
}

func NewOpenAIConfig() *OpenAIConfig {
	conf := &OpenAIConfig{}
	_ = resolveConfig(conf)
	return conf
}
