package config

import (
	"fmt"
	"net/url"
	"time"
)

// ProxyClientConfig 远端请求处理组件配置
//
// 回环部署中前向路由段的目标组件运行在本节点上，
// 由它向目标主机发起连接并把响应沿回程段送回。
type ProxyClientConfig struct {
	// Enable 是否在本节点运行请求处理组件
	Enable bool `json:"enable"`

	// DialTimeout 连接目标主机的超时
	DialTimeout Duration `json:"dial_timeout"`

	// WriteTimeout 单次写入上游的超时
	WriteTimeout Duration `json:"write_timeout"`

	// MaxStreams 同时保持的上游连接数上限
	// 超出时关闭最久未使用的连接
	MaxStreams int `json:"max_streams"`

	// ReadBufferSize 每次读取上游响应的最大字节数
	ReadBufferSize int `json:"read_buffer_size"`

	// UpstreamProxy 上游 SOCKS5 代理，如 "socks5://127.0.0.1:1080"
	// 为空时直连
	UpstreamProxy string `json:"upstream_proxy,omitempty"`

	// MailboxCapacity 邮箱容量
	MailboxCapacity int `json:"mailbox_capacity"`
}

// DefaultProxyClientConfig 返回默认配置
func DefaultProxyClientConfig() ProxyClientConfig {
	return ProxyClientConfig{
		Enable:          true,
		DialTimeout:     Duration(10 * time.Second),
		WriteTimeout:    Duration(10 * time.Second),
		MaxStreams:      1024,
		ReadBufferSize:  16 * 1024,
		MailboxCapacity: 1024,
	}
}

// Validate 验证配置
func (c ProxyClientConfig) Validate() error {
	if !c.Enable {
		return nil
	}
	if c.DialTimeout <= 0 || c.WriteTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxStreams <= 0 || c.MailboxCapacity <= 0 {
		return ErrInvalidCapacity
	}
	if c.ReadBufferSize <= 0 {
		return ErrInvalidBufferSize
	}
	if c.UpstreamProxy != "" {
		u, err := url.Parse(c.UpstreamProxy)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidUpstream, c.UpstreamProxy)
		}
	}
	return nil
}
