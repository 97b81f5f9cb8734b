// Package proxygate 提供隐私代理网关节点
//
// 节点在本地接受浏览器的 HTTP 和 TLS 连接，识别目标主机，
// 把每块客户端数据封装成逐跳加密的包，沿路由交给处理请求的节点，
// 再把上游响应沿回程路由送回同一个客户端连接。
//
// # 快速开始
//
//	import "github.com/dep2p/go-proxygate"
//
//	node, err := proxygate.Start(ctx,
//	    proxygate.WithListeners(
//	        config.ListenerConfig{Address: "127.0.0.1:8080", OriginPort: 80},
//	        config.ListenerConfig{Address: "127.0.0.1:8443", OriginPort: 443},
//	    ),
//	    proxygate.WithKeyFile("node.key"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer node.Close()
//
// # 组件
//
//	┌────────────┐  InboundClientData   ┌─────────────┐  IncipientCoresPackage  ┌────────┐
//	│ Dispatcher │ ───────────────────▶ │ ProxyServer │ ──────────────────────▶ │ Hopper │
//	│            │ ◀─────────────────── │             │ ◀────────────────────── │        │
//	└────────────┘   TransmitDataMsg    └─────────────┘   ExpiredCoresPackage   └────────┘
//	                                                                             │    ▲
//	                                                         ExpiredCoresPackage ▼    │
//	                                                                        ┌─────────────┐
//	                                                                        │ ProxyClient │
//	                                                                        └─────────────┘
//
// 每个组件是一个 Actor，拥有独立的有界邮箱；启动时由 BindMessage
// 互相交换接收端。当前路由为环回路由，请求和响应都在本节点内完成。
//
// # 文件组织
//
//   - proxygate.go: 版本信息
//   - node.go: Node 生命周期
//   - options.go: 配置选项
//   - errors.go: 错误定义
package proxygate
