package config

type LogConfig struct {
	LogLevel   string `env:"LOG_LEVEL"`
	LogHandler string `env:"LOG_HANDLER"`
}

func NewLogConfig() *LogConfig {
	conf := &LogConfig{
		LogLevel:   "info",
		LogHandler: "default",
	}
	_ = resolveConfig(conf)
	return conf
}
