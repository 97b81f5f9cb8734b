package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)

	// 验证默认配置有效
	assert.NoError(t, cfg.Validate())

	require.Len(t, cfg.Dispatcher.Listeners, 2)
	assert.Equal(t, uint16(80), cfg.Dispatcher.Listeners[0].OriginPort)
	assert.Equal(t, uint16(443), cfg.Dispatcher.Listeners[1].OriginPort)

	t.Log("✅ NewConfig 测试通过")
}

// TestConfig_ValidateNil 测试空配置
func TestConfig_ValidateNil(t *testing.T) {
	var cfg *Config
	assert.ErrorIs(t, cfg.Validate(), ErrNilConfig)
}

// TestIdentityConfig 测试身份配置
func TestIdentityConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg := DefaultIdentityConfig()
		assert.Equal(t, CryptoModeBox, cfg.CryptoMode)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("InvalidMode", func(t *testing.T) {
		cfg := DefaultIdentityConfig()
		cfg.CryptoMode = "rot13"
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidCryptoMode)
	})

	t.Run("NullWithoutKey", func(t *testing.T) {
		cfg := IdentityConfig{CryptoMode: CryptoModeNull}
		assert.ErrorIs(t, cfg.Validate(), ErrNullKeyRequired)
	})

	t.Run("NullWithKey", func(t *testing.T) {
		cfg := IdentityConfig{CryptoMode: CryptoModeNull, NullKey: "Ldp"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("NullWithBadKey", func(t *testing.T) {
		cfg := IdentityConfig{CryptoMode: CryptoModeNull, NullKey: "0OIl"}
		assert.Error(t, cfg.Validate())
	})
}

// TestDispatcherConfig 测试监听器配置
func TestDispatcherConfig(t *testing.T) {
	t.Run("NoListeners", func(t *testing.T) {
		cfg := DefaultDispatcherConfig()
		cfg.Listeners = nil
		err := configWith(func(c *Config) { c.Dispatcher = cfg }).Validate()
		assert.ErrorIs(t, err, ErrNoListeners)
		assert.Contains(t, err.Error(), "dispatcher")
	})

	t.Run("BadAddress", func(t *testing.T) {
		cfg := DefaultDispatcherConfig()
		cfg.Listeners = []ListenerConfig{{Address: "nope"}}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidListener)
	})

	t.Run("Duplicate", func(t *testing.T) {
		cfg := DefaultDispatcherConfig()
		cfg.Listeners = []ListenerConfig{{Address: ":8080"}, {Address: ":8080"}}
		assert.ErrorIs(t, cfg.Validate(), ErrDuplicateListener)
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		cfg := DefaultDispatcherConfig()
		cfg.MailboxCapacity = 0
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidCapacity)
	})
}

// TestProxyClientConfig 测试请求处理组件配置
func TestProxyClientConfig(t *testing.T) {
	cfg := DefaultProxyClientConfig()
	assert.NoError(t, cfg.Validate())

	cfg.UpstreamProxy = "socks5://127.0.0.1:1080"
	assert.NoError(t, cfg.Validate())

	cfg.UpstreamProxy = "::bad::"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidUpstream)

	// 禁用时不校验其余字段
	disabled := ProxyClientConfig{Enable: false}
	assert.NoError(t, disabled.Validate())

	cfg = DefaultProxyClientConfig()
	cfg.DialTimeout = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidTimeout)
}

// TestLogConfig 测试日志配置
func TestLogConfig(t *testing.T) {
	cfg := DefaultLogConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Level = "verbose"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLogLevel)

	cfg = DefaultLogConfig()
	cfg.Format = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLogFormat)
}

// TestFromJSON 测试部分 JSON 覆盖默认值
func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"dispatcher": {"listeners": [{"address": "127.0.0.1:8080", "origin_port": 80}]},
		"proxy_client": {"dial_timeout": "3s"},
		"log": {"level": "debug"}
	}`)

	cfg, err := FromJSON(data)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Len(t, cfg.Dispatcher.Listeners, 1)
	assert.Equal(t, "127.0.0.1:8080", cfg.Dispatcher.Listeners[0].Address)
	assert.Equal(t, 3*time.Second, cfg.ProxyClient.DialTimeout.Duration())
	assert.Equal(t, "debug", cfg.Log.Level)

	// 未出现的字段保留默认值
	assert.Equal(t, DefaultDispatcherConfig().ReadBufferSize, cfg.Dispatcher.ReadBufferSize)
	assert.Equal(t, CryptoModeBox, cfg.Identity.CryptoMode)

	_, err = FromJSON([]byte(`{"proxy_client": {"dial_timeout": "soon"}}`))
	assert.Error(t, err)
}

// TestLoadFile 测试文件加载与序列化往返
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxygate.json")

	cfg := NewConfig()
	cfg.Metrics.ListenAddr = "127.0.0.1:9100"
	data, err := cfg.ToJSON()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// TestDuration 测试 Duration 解析
func TestDuration(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`"250ms"`)))
	assert.Equal(t, 250*time.Millisecond, d.Duration())

	require.NoError(t, d.UnmarshalJSON([]byte(`1000`)))
	assert.Equal(t, time.Microsecond, d.Duration())

	assert.Error(t, d.UnmarshalJSON([]byte(`true`)))
}

// TestFlowConfig 测试流控窗口
func TestFlowConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		assert.NoError(t, DefaultFlowConfig().Validate())
	})

	t.Run("StreamWindowRange", func(t *testing.T) {
		for _, w := range []int{0, -1, MaxStreamWindow + 1} {
			cfg := DefaultFlowConfig()
			cfg.StreamWindow = w
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidWindow, "window %d", w)
		}
	})

	t.Run("SessionSmallerThanStream", func(t *testing.T) {
		cfg := FlowConfig{StreamWindow: 8, SessionWindow: 4}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidWindow)
	})

	t.Run("ExceedsMailbox", func(t *testing.T) {
		err := configWith(func(c *Config) { c.Hopper.MailboxCapacity = 64 }).Validate()
		assert.ErrorIs(t, err, ErrWindowExceedsMailbox)
		assert.Contains(t, err.Error(), "hopper")
	})

	t.Run("DisabledProxyClientIgnored", func(t *testing.T) {
		err := configWith(func(c *Config) {
			c.ProxyClient.Enable = false
			c.ProxyClient.MailboxCapacity = 1
		}).Validate()
		assert.NoError(t, err)
	})
}

// TestWriteTimeouts 测试写超时必须为正数
func TestWriteTimeouts(t *testing.T) {
	d := DefaultDispatcherConfig()
	d.WriteTimeout = 0
	assert.ErrorIs(t, d.Validate(), ErrInvalidTimeout)

	p := DefaultProxyClientConfig()
	p.WriteTimeout = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidTimeout)
}

// configWith 以默认配置为基础应用修改
func configWith(fn func(*Config)) *Config {
	cfg := NewConfig()
	fn(cfg)
	return cfg
}
