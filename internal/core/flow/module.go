package flow

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-proxygate/config"
)

// Params 流控依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Provide 创建流控器
func Provide(p Params) *Controller {
	cfg := config.DefaultFlowConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Flow
	}
	return NewController(cfg)
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("flow",
		fx.Provide(Provide),
	)
}
