// Package interfaces 定义 proxygate 公共接口
//
// 本文件定义 RouteBuilder 接口，即路由选择决策点。
package interfaces

import "github.com/dep2p/go-proxygate/pkg/types"

// RouteBuilder 路由构建器
//
// 为一次请求构建往返路由：前向段到达远端请求处理组件，
// 回程段回到本网关的响应处理组件。
//
// 网关只依赖此接口，拓扑感知的实现可以直接替换默认的回环实现。
type RouteBuilder interface {
	// BuildRoute 构建往返路由
	//
	// 仅在加密引擎无法封装路由头时失败，这属于配置级致命错误。
	BuildRoute(cryptde CryptDE) (types.Route, error)
}

// RouteBuilderFunc 函数适配器
type RouteBuilderFunc func(cryptde CryptDE) (types.Route, error)

// BuildRoute 实现 RouteBuilder 接口
func (f RouteBuilderFunc) BuildRoute(cryptde CryptDE) (types.Route, error) {
	return f(cryptde)
}
