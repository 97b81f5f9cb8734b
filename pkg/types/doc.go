// Package types 定义 proxygate 的基础类型
//
// 这是整个系统的最底层包，不依赖任何其他 proxygate 内部包。
// 所有类型都是纯值类型，用于在各 Actor 之间以消息形式传递。
//
// # 类型分组
//
//   - 身份与数据：PublicKey、PlainData、CryptData
//   - 连接标识：StreamKey、Endpoint
//   - 枚举：ProxyProtocol、Component、PayloadKind
//   - 消息：InboundClientData、TransmitDataMsg
//   - 载荷：ClientRequestPayload、ClientResponsePayload
//   - 路由与包：Route、RouteSegment、IncipientCoresPackage、ExpiredCoresPackage
package types
