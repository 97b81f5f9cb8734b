package config

import (
	"github.com/dep2p/go-proxygate/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别: debug, info, warn, error
	Level string `json:"level"`

	// Format 输出格式: text 或 json
	Format string `json:"format"`

	// File 日志文件路径，为空时输出到标准错误
	File string `json:"file,omitempty"`
}

// DefaultLogConfig 返回默认配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: string(log.FormatText),
	}
}

// Validate 验证配置
func (c LogConfig) Validate() error {
	if _, ok := log.ParseLevel(c.Level); !ok {
		return ErrInvalidLogLevel
	}
	switch log.Format(c.Format) {
	case log.FormatText, log.FormatJSON:
		return nil
	default:
		return ErrInvalidLogFormat
	}
}
