package config

// MetricsConfig Prometheus 指标配置
type MetricsConfig struct {
	// Enable 是否收集指标
	Enable bool `json:"enable"`

	// ListenAddr /metrics 暴露地址
	// 为空时只收集不暴露
	ListenAddr string `json:"listen_addr,omitempty"`
}

// DefaultMetricsConfig 返回默认配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{Enable: true}
}

// Validate 验证配置
func (c MetricsConfig) Validate() error {
	return nil
}
