package config

import (
	"fmt"
	"net"
	"time"
)

// ListenerConfig 单个客户端监听器
//
// Address 是实际监听地址，OriginPort 是报告给网关的来源端口。
// 二者分开配置，使得在非特权端口上监听的节点仍能声明 80/443。
type ListenerConfig struct {
	// Address 监听地址，如 "127.0.0.1:8080"
	Address string `json:"address"`

	// OriginPort 声明的来源端口
	// 0 表示使用 Address 中的端口
	OriginPort uint16 `json:"origin_port,omitempty"`
}

// DispatcherConfig 套接字多路复用配置
type DispatcherConfig struct {
	// Listeners 客户端监听器列表
	Listeners []ListenerConfig `json:"listeners"`

	// ReadBufferSize 每次读取的最大字节数
	ReadBufferSize int `json:"read_buffer_size"`

	// AcceptRate 每个监听器每秒接受的连接数
	// 0 表示不限制
	AcceptRate float64 `json:"accept_rate,omitempty"`

	// AcceptBurst 接受连接的突发容量
	AcceptBurst int `json:"accept_burst,omitempty"`

	// WriteTimeout 单次写入客户端的超时
	// 客户端长时间不读取时连接被关闭
	WriteTimeout Duration `json:"write_timeout"`

	// MailboxCapacity 邮箱容量
	MailboxCapacity int `json:"mailbox_capacity"`
}

// DefaultDispatcherConfig 返回默认配置
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Listeners: []ListenerConfig{
			{Address: "127.0.0.1:80", OriginPort: 80},   // 明文 HTTP
			{Address: "127.0.0.1:443", OriginPort: 443}, // TLS
		},
		ReadBufferSize:  16 * 1024, // 单次读取 16 KB，足以容纳完整的 ClientHello
		AcceptRate:      0,         // 不限速
		AcceptBurst:     64,
		WriteTimeout:    Duration(10 * time.Second),
		MailboxCapacity: 1024,
	}
}

// Validate 验证配置
func (c DispatcherConfig) Validate() error {
	if len(c.Listeners) == 0 {
		return ErrNoListeners
	}
	seen := make(map[string]struct{}, len(c.Listeners))
	for _, l := range c.Listeners {
		if _, _, err := net.SplitHostPort(l.Address); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidListener, l.Address, err)
		}
		if _, dup := seen[l.Address]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateListener, l.Address)
		}
		seen[l.Address] = struct{}{}
	}
	if c.ReadBufferSize <= 0 {
		return ErrInvalidBufferSize
	}
	if c.WriteTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MailboxCapacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}
