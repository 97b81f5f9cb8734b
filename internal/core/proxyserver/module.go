package proxyserver

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-proxygate/config"
	"github.com/dep2p/go-proxygate/internal/core/metrics"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
)

// Params ProxyServer 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	CryptDE    pkgif.CryptDE
	Routes     pkgif.RouteBuilder
	Reporter   metrics.Reporter `optional:"true"`
}

// Result ProxyServer 输出
type Result struct {
	fx.Out

	Actor  *Actor
	Subs   pkgif.ProxyServerSubs
	Binder pkgif.Recipient[pkgif.BindMessage] `group:"binders"`
}

// Provide 创建网关 Actor
func Provide(p Params) Result {
	cfg := config.DefaultProxyServerConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.ProxyServer
	}
	a := NewActor(New(p.CryptDE, p.Routes, p.Reporter), cfg.MailboxCapacity)
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
	return fx.Module("proxyserver",
		fx.Provide(Provide),
		fx.Invoke(registerLifecycle),
	)
}
