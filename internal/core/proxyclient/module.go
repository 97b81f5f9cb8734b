package proxyclient

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-proxygate/config"
	"github.com/dep2p/go-proxygate/internal/core/flow"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
)

// Params ProxyClient 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config   `optional:"true"`
	Flow       *flow.Controller `optional:"true"`
	CryptDE    pkgif.CryptDE
}

// Result ProxyClient 输出
type Result struct {
	fx.Out

	Actor  *Actor
	Subs   pkgif.ProxyClientSubs
	Binder pkgif.Recipient[pkgif.BindMessage] `group:"binders"`
}

// Provide 创建请求处理组件 Actor
func Provide(p Params) (Result, error) {
	cfg := config.DefaultProxyClientConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.ProxyClient
	}

	dialer, err := NewDialer(cfg)
	if err != nil {
		return Result{}, err
	}
	client, err := New(cfg, p.CryptDE, dialer, p.Flow)
	if err != nil {
		return Result{}, err
	}

	a := NewActor(client, cfg.MailboxCapacity)
	return Result{Actor: a, Subs: a.Subs(), Binder: a.Bind()}, nil
}

func registerLifecycle(lc fx.Lifecycle, a *Actor) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			a.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			return a.Stop()
		},
	})
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("proxyclient",
		fx.Provide(Provide),
		fx.Invoke(registerLifecycle),
	)
}
