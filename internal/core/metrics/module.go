package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-proxygate/config"
	"github.com/dep2p/go-proxygate/pkg/lib/log"
)

var logger = log.Logger("proxygate/metrics")

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Result Metrics 输出
type Result struct {
	fx.Out

	Registry *prometheus.Registry
	Reporter Reporter
}

// Provide 创建注册表和 Reporter
//
// 禁用指标时 Reporter 为 NopReporter。
func Provide(p Params) (Result, error) {
	cfg := config.DefaultMetricsConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Metrics
	}

	reg := prometheus.NewRegistry()
	if !cfg.Enable {
		return Result{Registry: reg, Reporter: NopReporter{}}, nil
	}

	c, err := NewCollector(reg)
	if err != nil {
		return Result{}, err
	}
	return Result{Registry: reg, Reporter: c}, nil
}

type lifecycleInput struct {
	fx.In

	LC         fx.Lifecycle
	UnifiedCfg *config.Config `optional:"true"`
	Registry   *prometheus.Registry
}

// registerLifecycle 按需启动 /metrics 服务
func registerLifecycle(input lifecycleInput) {
	if input.UnifiedCfg == nil || !input.UnifiedCfg.Metrics.Enable || input.UnifiedCfg.Metrics.ListenAddr == "" {
		return
	}

	srv := NewServer(input.UnifiedCfg.Metrics.ListenAddr, input.Registry)
	input.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			return srv.Stop(ctx)
		},
	})
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(Provide),
	fx.Invoke(registerLifecycle),
)
