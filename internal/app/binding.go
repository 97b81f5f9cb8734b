package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
)

// BindParams 绑定所需的接收端
type BindParams struct {
	fx.In

	Dispatcher  pkgif.DispatcherSubs
	Hopper      pkgif.HopperSubs
	ProxyServer pkgif.ProxyServerSubs
	ProxyClient pkgif.ProxyClientSubs `optional:"true"`

	Binders []pkgif.Recipient[pkgif.BindMessage] `group:"binders"`
}

// PeerActors 组装接收端集合
func (p BindParams) PeerActors() pkgif.PeerActors {
	return pkgif.PeerActors{
		Dispatcher:  p.Dispatcher,
		Hopper:      p.Hopper,
		ProxyServer: p.ProxyServer,
		ProxyClient: p.ProxyClient,
	}
}

// BindAll 向每个 Actor 发送同一条绑定消息
func BindAll(msg pkgif.BindMessage, binders []pkgif.Recipient[pkgif.BindMessage]) error {
	var err error
	for i, b := range binders {
		if sendErr := b.TrySend(msg); sendErr != nil {
			err = multierr.Append(err, fmt.Errorf("binder %d: %w", i, sendErr))
		}
	}
	return err
}

func registerBinding(lc fx.Lifecycle, p BindParams) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Debug("绑定 Actor", "count", len(p.Binders))
			return BindAll(pkgif.BindMessage{PeerActors: p.PeerActors()}, p.Binders)
		},
	})
}

// BindModule 启动时分发绑定消息
func BindModule() fx.Option {
	return fx.Module("bind",
		fx.Invoke(registerBinding),
	)
}
