package config

// ProxyServerConfig 网关 Actor 配置
type ProxyServerConfig struct {
	// MailboxCapacity 邮箱容量
	// 邮箱满被发送方视为网关不可用
	MailboxCapacity int `json:"mailbox_capacity"`
}

// DefaultProxyServerConfig 返回默认配置
func DefaultProxyServerConfig() ProxyServerConfig {
	return ProxyServerConfig{MailboxCapacity: 1024}
}

// Validate 验证配置
func (c ProxyServerConfig) Validate() error {
	if c.MailboxCapacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// HopperConfig 多跳传输配置
type HopperConfig struct {
	// MailboxCapacity 邮箱容量
	MailboxCapacity int `json:"mailbox_capacity"`
}

// DefaultHopperConfig 返回默认配置
func DefaultHopperConfig() HopperConfig {
	return HopperConfig{MailboxCapacity: 1024}
}

// Validate 验证配置
func (c HopperConfig) Validate() error {
	if c.MailboxCapacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}
