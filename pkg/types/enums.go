package types

// ============================================================================
//                              ProxyProtocol - 代理协议
// ============================================================================

// ProxyProtocol 客户端使用的应用层协议
//
// 附着在每个请求载荷上，决定远端请求处理组件如何解释数据。
type ProxyProtocol int

const (
	// ProtocolHTTP 明文 HTTP
	ProtocolHTTP ProxyProtocol = iota
	// ProtocolTLS TLS
	ProtocolTLS
)

// String 返回协议的字符串表示
func (p ProxyProtocol) String() string {
	switch p {
	case ProtocolHTTP:
		return "HTTP"
	case ProtocolTLS:
		return "TLS"
	default:
		return "Unknown"
	}
}

// Valid 检查协议值是否有效
func (p ProxyProtocol) Valid() bool {
	return p == ProtocolHTTP || p == ProtocolTLS
}

// DefaultPort 返回协议的默认端口
//
// 仅在 Dispatcher 未报告来源端口时使用。
func (p ProxyProtocol) DefaultPort() uint16 {
	if p == ProtocolTLS {
		return 443
	}
	return 80
}

// ============================================================================
//                              Component - 逻辑组件
// ============================================================================

// Component 路由跳的目标组件
//
// 路由段末端的包会被交付给本节点上的该组件。
type Component int

const (
	// ComponentNone 无组件（中间跳）
	ComponentNone Component = iota
	// ComponentProxyServer 网关侧响应处理组件
	ComponentProxyServer
	// ComponentProxyClient 远端请求处理组件
	ComponentProxyClient
	// ComponentHopper 多跳传输组件
	ComponentHopper
	// ComponentNeighborhood 拓扑服务
	ComponentNeighborhood
)

// String 返回组件的字符串表示
func (c Component) String() string {
	switch c {
	case ComponentNone:
		return "None"
	case ComponentProxyServer:
		return "ProxyServer"
	case ComponentProxyClient:
		return "ProxyClient"
	case ComponentHopper:
		return "Hopper"
	case ComponentNeighborhood:
		return "Neighborhood"
	default:
		return "Unknown"
	}
}

// Valid 检查组件值是否有效
func (c Component) Valid() bool {
	return c >= ComponentNone && c <= ComponentNeighborhood
}

// ============================================================================
//                              PayloadKind - 载荷类型
// ============================================================================

// PayloadKind 跨中继边界的载荷类型标签
//
// 解密后的载荷必须先核对标签，再按对应类型解释。
type PayloadKind int

const (
	// PayloadUnknown 未知载荷
	PayloadUnknown PayloadKind = iota
	// PayloadClientRequest 客户端请求载荷
	PayloadClientRequest
	// PayloadClientResponse 客户端响应载荷
	PayloadClientResponse
)

// String 返回载荷类型的字符串表示
func (k PayloadKind) String() string {
	switch k {
	case PayloadClientRequest:
		return "ClientRequest"
	case PayloadClientResponse:
		return "ClientResponse"
	default:
		return "Unknown"
	}
}
