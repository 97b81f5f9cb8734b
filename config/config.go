// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义，提供 DefaultXConfig() 和 Validate()
//   - 支持从 JSON 加载和保存配置
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Dispatcher.Listeners = []config.ListenerConfig{{Address: "127.0.0.1:8080", OriginPort: 80}}
//
//	// 从 JSON 文件加载
//	cfg, err := config.LoadFile("proxygate.json")
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config 是 proxygate 节点的完整配置结构
//
// 配置按照组件组织：
//   - Identity: 节点密钥与加密引擎
//   - Dispatcher: 本地客户端监听器
//   - ProxyServer: 网关 Actor
//   - Hopper: 多跳传输
//   - ProxyClient: 远端请求处理组件
//   - Flow: 数据路径流控
//   - Metrics: Prometheus 指标
//   - Log: 日志
type Config struct {
	// Identity 身份配置
	Identity IdentityConfig `json:"identity"`

	// Dispatcher 套接字多路复用配置
	Dispatcher DispatcherConfig `json:"dispatcher"`

	// ProxyServer 网关配置
	ProxyServer ProxyServerConfig `json:"proxy_server"`

	// Hopper 多跳传输配置
	Hopper HopperConfig `json:"hopper"`

	// ProxyClient 请求处理组件配置
	ProxyClient ProxyClientConfig `json:"proxy_client"`

	// Flow 流控配置
	Flow FlowConfig `json:"flow"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Identity:    DefaultIdentityConfig(),
		Dispatcher:  DefaultDispatcherConfig(),
		ProxyServer: DefaultProxyServerConfig(),
		Hopper:      DefaultHopperConfig(),
		ProxyClient: DefaultProxyClientConfig(),
		Flow:        DefaultFlowConfig(),
		Metrics:     DefaultMetricsConfig(),
		Log:         DefaultLogConfig(),
	}
}

// Validate 验证整个配置的有效性
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	validators := []struct {
		name string
		fn   func() error
	}{
		{"identity", c.Identity.Validate},
		{"dispatcher", c.Dispatcher.Validate},
		{"proxy_server", c.ProxyServer.Validate},
		{"hopper", c.Hopper.Validate},
		{"proxy_client", c.ProxyClient.Validate},
		{"flow", c.Flow.Validate},
		{"metrics", c.Metrics.Validate},
		{"log", c.Log.Validate},
	}
	for _, v := range validators {
		if err := v.fn(); err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
	}
	if err := c.validateFlow(); err != nil {
		return fmt.Errorf("flow: %w", err)
	}
	return nil
}

// ============================================================================
//                              JSON 序列化
// ============================================================================

// FromJSON 从 JSON 数据创建配置
//
// 未出现在 JSON 中的字段保留默认值。
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadFile 从 JSON 文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户指定的配置文件路径是预期行为
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}

// ToJSON 序列化为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
