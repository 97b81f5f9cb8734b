// Package proxyserver 实现网关：本地客户端与多跳网络之间的出入口
//
// 出站方向：
//
//	InboundClientData → 嗅探协议和目标 → ClientRequestPayload
//	  → 往返路由 → IncipientCoresPackage → Hopper
//
// 入站方向：
//
//	ExpiredCoresPackage → ClientResponsePayload → TransmitDataMsg → Dispatcher
//
// 请求与响应通过 StreamKey 关联，网关本身不保留任何按请求的状态。
//
// # 致命错误
//
// 缺少绑定的协作组件，或协作组件的邮箱已满，说明启动顺序有误或对方已死亡。
// 这类情况直接 panic，避免静默丢弃所有流量：
//
//	Hopper unbound in ProxyServer / Dispatcher unbound in ProxyServer
//	Hopper is dead / Dispatcher is dead
//	Couldn't create route
package proxyserver
