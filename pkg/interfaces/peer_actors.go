// Package interfaces 定义 proxygate 公共接口
//
// 本文件定义各 Actor 的订阅句柄集合与绑定消息。
package interfaces

import "github.com/dep2p/go-proxygate/pkg/types"

// DispatcherSubs Dispatcher 对外暴露的接收端
type DispatcherSubs struct {
	// FromProxyServer 发送指令
	FromProxyServer Recipient[types.TransmitDataMsg]
}

// HopperSubs Hopper 对外暴露的接收端
type HopperSubs struct {
	// FromHopperClient 待发出的加密包
	FromHopperClient Recipient[*types.IncipientCoresPackage]
}

// ProxyServerSubs 网关对外暴露的接收端
type ProxyServerSubs struct {
	// FromDispatcher 客户端数据
	FromDispatcher Recipient[types.InboundClientData]

	// FromHopper 回程包
	FromHopper Recipient[*types.ExpiredCoresPackage]
}

// ProxyClientSubs 远端请求处理组件对外暴露的接收端
type ProxyClientSubs struct {
	// FromHopper 请求包
	FromHopper Recipient[*types.ExpiredCoresPackage]
}

// PeerActors 所有 Actor 的接收端集合
//
// 启动时由 bootstrap 组装，并通过 BindMessage 分发给每个 Actor。
type PeerActors struct {
	Dispatcher  DispatcherSubs
	Hopper      HopperSubs
	ProxyServer ProxyServerSubs
	ProxyClient ProxyClientSubs
}

// BindMessage 一次性绑定消息
type BindMessage struct {
	PeerActors PeerActors
}
