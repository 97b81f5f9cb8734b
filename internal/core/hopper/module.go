package hopper

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-proxygate/config"
	"github.com/dep2p/go-proxygate/internal/core/metrics"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
)

// Params Hopper 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	CryptDE    pkgif.CryptDE
	Reporter   metrics.Reporter `optional:"true"`
}

// Result Hopper 输出
type Result struct {
	fx.Out

	Actor  *Actor
	Subs   pkgif.HopperSubs
	Binder pkgif.Recipient[pkgif.BindMessage] `group:"binders"`
}

// Provide 创建 Hopper Actor
func Provide(p Params) Result {
	cfg := config.DefaultHopperConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Hopper
	}
	a := NewActor(New(p.CryptDE, p.Reporter), cfg.MailboxCapacity)
	return Result{Actor: a, Subs: a.Subs(), Binder: a.Bind()}
}

func registerLifecycle(lc fx.Lifecycle, a *Actor) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			a.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			a.Stop()
			return nil
		},
	})
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("hopper",
		fx.Provide(Provide),
		fx.Invoke(registerLifecycle),
	)
}
