// Package neighborhood 提供路由选择决策点
//
// 拓扑服务尚未接入，默认实现是 LoopbackRouteBuilder：
// 前向段和回程段的每一跳都是本节点自己。
// 网关只通过 interfaces.RouteBuilder 使用本包，替换实现不影响网关。
package neighborhood
