// Package app 提供模块集合清单
//
// modulesets.go 集中维护"哪些模块属于哪一层"，是 Bootstrap 组装的唯一模块来源。
package app

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-proxygate/internal/core/cryptde"
	"github.com/dep2p/go-proxygate/internal/core/dispatcher"
	"github.com/dep2p/go-proxygate/internal/core/flow"
	"github.com/dep2p/go-proxygate/internal/core/hopper"
	"github.com/dep2p/go-proxygate/internal/core/metrics"
	"github.com/dep2p/go-proxygate/internal/core/neighborhood"
	"github.com/dep2p/go-proxygate/internal/core/proxyclient"
	"github.com/dep2p/go-proxygate/internal/core/proxyserver"
)

// FoundationModules 基础层模块组合
//
// 加密引擎、路由构建、流控和指标，始终加载。
func FoundationModules() fx.Option {
	return fx.Options(
		cryptde.Module(),
		neighborhood.Module(),
		flow.Module(),
		metrics.Module,
	)
}

// ActorModules 本地 Actor 模块组合
//
// 始终加载，不受配置开关控制。ProxyServer 排在最后，停止时最先停止。
func ActorModules() fx.Option {
	return fx.Options(
		dispatcher.Module(),
		hopper.Module(),
		proxyserver.Module(),
	)
}

// ProxyClientModule 请求处理组件模块
//
// 由 Bootstrap 根据 config.ProxyClient.Enable 决定是否加载。
func ProxyClientModule() fx.Option {
	return proxyclient.Module()
}
