package proxygate

import (
	"fmt"
	"strings"

	"github.com/dep2p/go-proxygate/config"
)

// Option 用户配置选项函数
type Option func(*config.Config) error

// WithConfig 以完整配置为基础
//
// 应作为第一个选项，之后的选项在其上覆盖。
func WithConfig(cfg *config.Config) Option {
	return func(c *config.Config) error {
		if cfg == nil {
			return config.ErrNilConfig
		}
		*c = *cfg
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载配置
func WithConfigFile(path string) Option {
	return func(c *config.Config) error {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		*c = *loaded
		return nil
	}
}

// WithListeners 设置客户端监听器
func WithListeners(listeners ...config.ListenerConfig) Option {
	return func(c *config.Config) error {
		if len(listeners) == 0 {
			return config.ErrNoListeners
		}
		c.Dispatcher.Listeners = append([]config.ListenerConfig(nil), listeners...)
		return nil
	}
}

// WithCryptoMode 设置加密引擎模式
func WithCryptoMode(mode string) Option {
	return func(c *config.Config) error {
		switch mode {
		case config.CryptoModeBox, config.CryptoModeNull:
			c.Identity.CryptoMode = mode
			return nil
		default:
			return fmt.Errorf("%w: %q", config.ErrInvalidCryptoMode, mode)
		}
	}
}

// WithKeyFile 设置私钥文件路径
func WithKeyFile(path string) Option {
	return func(c *config.Config) error {
		c.Identity.KeyFile = path
		return nil
	}
}

// WithProxyClient 启用或禁用本地请求处理组件
func WithProxyClient(enable bool) Option {
	return func(c *config.Config) error {
		c.ProxyClient.Enable = enable
		return nil
	}
}

// WithUpstreamProxy 经由 SOCKS5 代理连接目标服务器
func WithUpstreamProxy(proxyURL string) Option {
	return func(c *config.Config) error {
		c.ProxyClient.UpstreamProxy = proxyURL
		return nil
	}
}

// WithMetrics 设置指标收集；addr 为空时只收集不暴露
func WithMetrics(enable bool, addr string) Option {
	return func(c *config.Config) error {
		c.Metrics.Enable = enable
		c.Metrics.ListenAddr = addr
		return nil
	}
}

// WithLogLevel 设置日志级别
func WithLogLevel(level string) Option {
	return func(c *config.Config) error {
		c.Log.Level = strings.ToLower(level)
		return nil
	}
}

// WithLogFile 设置日志文件
func WithLogFile(path string) Option {
	return func(c *config.Config) error {
		c.Log.File = path
		return nil
	}
}
