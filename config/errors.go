package config

import "errors"

// 配置错误
var (
	// ErrNilConfig 配置为空
	ErrNilConfig = errors.New("config is nil")

	// ErrInvalidCryptoMode 无效的加密引擎模式
	ErrInvalidCryptoMode = errors.New("invalid crypto mode: must be box or null")

	// ErrNullKeyRequired null 模式需要指定公钥
	ErrNullKeyRequired = errors.New("null crypto mode requires null_key")

	// ErrNoListeners 未配置监听器
	ErrNoListeners = errors.New("at least one listener must be configured")

	// ErrInvalidListener 无效的监听器配置
	ErrInvalidListener = errors.New("invalid listener")

	// ErrDuplicateListener 重复的监听地址
	ErrDuplicateListener = errors.New("duplicate listener address")

	// ErrInvalidCapacity 邮箱容量必须为正数
	ErrInvalidCapacity = errors.New("mailbox capacity must be positive")

	// ErrInvalidBufferSize 读缓冲区必须为正数
	ErrInvalidBufferSize = errors.New("read buffer size must be positive")

	// ErrInvalidTimeout 超时必须为正数
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidUpstream 无效的上游代理地址
	ErrInvalidUpstream = errors.New("invalid upstream proxy URL")

	// ErrInvalidWindow 无效的流控窗口
	ErrInvalidWindow = errors.New("invalid flow window")

	// ErrWindowExceedsMailbox 会话窗口超过邮箱容量
	ErrWindowExceedsMailbox = errors.New("flow window exceeds mailbox capacity")

	// ErrInvalidLogLevel 无效的日志级别
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn or error")

	// ErrInvalidLogFormat 无效的日志格式
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")
)
