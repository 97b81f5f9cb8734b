package dispatcher

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-proxygate/config"
	"github.com/dep2p/go-proxygate/internal/core/flow"
	"github.com/dep2p/go-proxygate/internal/core/metrics"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
)

// Params Dispatcher 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config   `optional:"true"`
	Flow       *flow.Controller `optional:"true"`
	Reporter   metrics.Reporter `optional:"true"`
}

// Result Dispatcher 输出
type Result struct {
	fx.Out

	Actor  *Actor
	Subs   pkgif.DispatcherSubs
	Binder pkgif.Recipient[pkgif.BindMessage] `group:"binders"`
}

// Provide 创建 Dispatcher Actor
func Provide(p Params) Result {
	cfg := config.DefaultDispatcherConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Dispatcher
	}
	a := NewActor(New(cfg, p.Flow, p.Reporter), cfg.MailboxCapacity)
	return Result{Actor: a, Subs: a.Subs(), Binder: a.Bind()}
}

func registerLifecycle(lc fx.Lifecycle, a *Actor) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return a.Start()
		},
		OnStop: func(context.Context) error {
			return a.Stop()
		},
	})
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("dispatcher",
		fx.Provide(Provide),
		fx.Invoke(registerLifecycle),
	)
}
