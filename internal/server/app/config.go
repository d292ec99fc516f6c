package app

import "go-simpler.org/env"

type Config struct {
	ListenAddr string `env:"PKTVERIFY_LISTEN" default:":8080" usage:"监听地址"`
	BaseDir    string `env:"PKTVERIFY_BASE_DIR" usage:"请求中的相对日志路径以此为根目录"`
	LogLevel   string `env:"PKTVERIFY_LOG_LEVEL" default:"info" usage:"日志级别：debug / info / warn / error"`
}

// LoadConfig 从环境变量读取配置。
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Load(&cfg, &env.Options{SliceSep: ","}); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
