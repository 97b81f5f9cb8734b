package neighborhood

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-proxygate/internal/core/route"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/types"
)

// LoopbackRouteBuilder 自环往返路由
//
//	段 1: [me, me] → ProxyClient
//	段 2: [me, me] → ProxyServer
type LoopbackRouteBuilder struct{}

var _ pkgif.RouteBuilder = LoopbackRouteBuilder{}

// Segments 返回自环路由段
func (LoopbackRouteBuilder) Segments(me types.PublicKey) []types.RouteSegment {
	return []types.RouteSegment{
		types.NewRouteSegment([]types.PublicKey{me, me}, types.ComponentProxyClient),
		types.NewRouteSegment([]types.PublicKey{me, me}, types.ComponentProxyServer),
	}
}

// BuildRoute 实现 RouteBuilder 接口
func (b LoopbackRouteBuilder) BuildRoute(cryptde pkgif.CryptDE) (types.Route, error) {
	return route.New(b.Segments(cryptde.PublicKey()), cryptde)
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("neighborhood",
		fx.Provide(func() pkgif.RouteBuilder { return LoopbackRouteBuilder{} }),
	)
}
