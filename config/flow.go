package config

import "fmt"

// MaxStreamWindow 单流窗口上限，等于请求处理组件每个流的待写队列长度
const MaxStreamWindow = 64

// FlowConfig 流控配置
//
// 源头（客户端读循环、上游读循环）每发出一块数据占用一个流窗口单位
// 和一个会话窗口单位，终点把数据写出后归还。
// 会话窗口不大于任何邮箱容量，正常流量就不会写满邮箱。
type FlowConfig struct {
	// StreamWindow 每个连接每个方向允许在途的数据块数
	StreamWindow int `json:"stream_window"`

	// SessionWindow 整个节点允许在途的数据块数
	SessionWindow int `json:"session_window"`
}

// DefaultFlowConfig 返回默认配置
func DefaultFlowConfig() FlowConfig {
	return FlowConfig{
		StreamWindow:  16,  // 16 × 16 KB
		SessionWindow: 512, // 邮箱默认容量的一半
	}
}

// Validate 验证配置
func (c FlowConfig) Validate() error {
	if c.StreamWindow <= 0 || c.StreamWindow > MaxStreamWindow {
		return fmt.Errorf("%w: stream_window must be in [1, %d]", ErrInvalidWindow, MaxStreamWindow)
	}
	if c.SessionWindow < c.StreamWindow {
		return fmt.Errorf("%w: session_window must not be smaller than stream_window", ErrInvalidWindow)
	}
	return nil
}

// validateFlow 会话窗口不能超过数据路径上任何一个邮箱的容量
func (c *Config) validateFlow() error {
	capacities := map[string]int{
		"dispatcher":   c.Dispatcher.MailboxCapacity,
		"proxy_server": c.ProxyServer.MailboxCapacity,
		"hopper":       c.Hopper.MailboxCapacity,
	}
	if c.ProxyClient.Enable {
		capacities["proxy_client"] = c.ProxyClient.MailboxCapacity
	}
	for name, capacity := range capacities {
		if c.Flow.SessionWindow > capacity {
			return fmt.Errorf("%w: session_window %d > %s mailbox %d",
				ErrWindowExceedsMailbox, c.Flow.SessionWindow, name, capacity)
		}
	}
	return nil
}
