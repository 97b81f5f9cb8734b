package main

import (
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/dep2p/go-proxygate/config"
)

// ============================================================================
//                              命令行参数
// ============================================================================
//
//   命令行参数：这次运行的覆盖
//   JSON 配置文件：这个节点的固定配置
//
// 优先级（从高到低）：命令行参数 > 环境变量 > 配置文件 > 默认值

// EnvPrefix 环境变量前缀
const EnvPrefix = "PROXYGATE_"

// 支持的环境变量（不含前缀）
const (
	EnvListen      = "LISTEN"
	EnvCryptoMode  = "CRYPTO_MODE"
	EnvKeyFile     = "KEY_FILE"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFile     = "LOG_FILE"
	EnvMetricsAddr = "METRICS_ADDR"
	EnvUpstream    = "UPSTREAM_PROXY"
	EnvProxyClient = "PROXY_CLIENT"
)

// listenFlag 可重复的 -listen 参数
type listenFlag []config.ListenerConfig

func (l *listenFlag) String() string {
	parts := make([]string, 0, len(*l))
	for _, lc := range *l {
		parts = append(parts, fmt.Sprintf("%s=%d", lc.Address, lc.OriginPort))
	}
	return strings.Join(parts, ",")
}

func (l *listenFlag) Set(v string) error {
	lc, err := parseListener(v)
	if err != nil {
		return err
	}
	*l = append(*l, lc)
	return nil
}

// flags 解析后的命令行参数
type flags struct {
	set *flag.FlagSet

	configFile  string
	listen      listenFlag
	cryptoMode  string
	keyFile     string
	logLevel    string
	logFile     string
	metricsAddr string
	upstream    string
	noClient    bool
	showVersion bool
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{set: flag.NewFlagSet("proxygate", flag.ContinueOnError)}
	fs := f.set

	fs.StringVar(&f.configFile, "config", "", "配置文件路径（JSON）")
	fs.Var(&f.listen, "listen", "客户端监听器 addr[=originPort]，可重复")
	fs.StringVar(&f.cryptoMode, "crypto", "", "加密引擎 (box/null)")
	fs.StringVar(&f.keyFile, "key-file", "", "私钥 PEM 文件路径")
	fs.StringVar(&f.logLevel, "log-level", "", "日志级别 (debug/info/warn/error)")
	fs.StringVar(&f.logFile, "log", "", "日志文件路径")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "/metrics 暴露地址")
	fs.StringVar(&f.upstream, "upstream-proxy", "", "连接目标时使用的 SOCKS5 代理 URL")
	fs.BoolVar(&f.noClient, "no-proxy-client", false, "禁用本地请求处理组件")
	fs.BoolVar(&f.showVersion, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *flags) isSet(name string) bool {
	found := false
	f.set.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// buildConfig 合并配置文件、环境变量和命令行参数
func buildConfig(f *flags, getenv func(string) string) (*config.Config, error) {
	cfg := config.NewConfig()
	if f.configFile != "" {
		loaded, err := config.LoadFile(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	}

	if err := applyEnvOverrides(cfg, getenv); err != nil {
		return nil, err
	}

	if len(f.listen) > 0 {
		cfg.Dispatcher.Listeners = append([]config.ListenerConfig(nil), f.listen...)
	}
	if f.isSet("crypto") {
		cfg.Identity.CryptoMode = f.cryptoMode
	}
	if f.isSet("key-file") {
		cfg.Identity.KeyFile = f.keyFile
	}
	if f.isSet("log-level") {
		cfg.Log.Level = strings.ToLower(f.logLevel)
	}
	if f.isSet("log") {
		cfg.Log.File = f.logFile
	}
	if f.isSet("metrics-addr") {
		cfg.Metrics.Enable = true
		cfg.Metrics.ListenAddr = f.metricsAddr
	}
	if f.isSet("upstream-proxy") {
		cfg.ProxyClient.UpstreamProxy = f.upstream
	}
	if f.noClient {
		cfg.ProxyClient.Enable = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides 应用环境变量覆盖配置
//
// 支持的环境变量（均使用 PROXYGATE_ 前缀）：
//   - PROXYGATE_LISTEN: 监听器列表，逗号分隔的 addr[=originPort]
//   - PROXYGATE_CRYPTO_MODE: 加密引擎
//   - PROXYGATE_KEY_FILE: 私钥文件
//   - PROXYGATE_LOG_LEVEL / PROXYGATE_LOG_FILE: 日志
//   - PROXYGATE_METRICS_ADDR: 指标暴露地址
//   - PROXYGATE_UPSTREAM_PROXY: SOCKS5 代理
//   - PROXYGATE_PROXY_CLIENT: 是否启用请求处理组件
func applyEnvOverrides(cfg *config.Config, getenv func(string) string) error {
	env := func(name string) string {
		return strings.TrimSpace(getenv(EnvPrefix + name))
	}

	if v := env(EnvListen); v != "" {
		var listeners []config.ListenerConfig
		for _, part := range splitAndTrim(v, ",") {
			lc, err := parseListener(part)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, EnvListen, err)
			}
			listeners = append(listeners, lc)
		}
		cfg.Dispatcher.Listeners = listeners
	}
	if v := env(EnvCryptoMode); v != "" {
		cfg.Identity.CryptoMode = v
	}
	if v := env(EnvKeyFile); v != "" {
		cfg.Identity.KeyFile = v
	}
	if v := env(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := env(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	if v := env(EnvMetricsAddr); v != "" {
		cfg.Metrics.Enable = true
		cfg.Metrics.ListenAddr = v
	}
	if v := env(EnvUpstream); v != "" {
		cfg.ProxyClient.UpstreamProxy = v
	}
	if v := env(EnvProxyClient); v != "" {
		cfg.ProxyClient.Enable = parseBool(v)
	}
	return nil
}

// parseListener 解析 addr[=originPort]
func parseListener(v string) (config.ListenerConfig, error) {
	addr, port, hasPort := strings.Cut(strings.TrimSpace(v), "=")
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return config.ListenerConfig{}, fmt.Errorf("%w: %q", config.ErrInvalidListener, v)
	}
	lc := config.ListenerConfig{Address: addr}
	if hasPort {
		p, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return config.ListenerConfig{}, fmt.Errorf("%w: origin port %q", config.ErrInvalidListener, port)
		}
		lc.OriginPort = uint16(p)
	}
	return lc, nil
}

// ============================================================================
//                              辅助函数
// ============================================================================

// parseBool 解析布尔值字符串
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// splitAndTrim 分割字符串并去除空白
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

