package types

import (
	"net/netip"
)

// ============================================================================
//                              StreamKey - 流标识
// ============================================================================

// StreamKey 客户端连接标识
//
// 由 Dispatcher 为每个客户端套接字分配（即套接字远端地址），
// 在连接存活期间保持稳定且不被复用。
// 请求载荷与响应载荷通过 StreamKey 相互关联，
// 它必须原样穿越多跳传输再回到本网关。
type StreamKey struct {
	netip.AddrPort
}

// NewStreamKey 从地址端口创建流标识
func NewStreamKey(addr netip.AddrPort) StreamKey {
	return StreamKey{AddrPort: addr}
}

// ParseStreamKey 从 "ip:port" 字符串解析流标识
func ParseStreamKey(s string) (StreamKey, error) {
	addr, err := netip.ParseAddrPort(s)
	if err != nil {
		return StreamKey{}, ErrInvalidStreamKey
	}
	return StreamKey{AddrPort: addr}, nil
}

// MustParseStreamKey 解析流标识，失败时 panic
//
// 仅用于测试和常量初始化。
func MustParseStreamKey(s string) StreamKey {
	key, err := ParseStreamKey(s)
	if err != nil {
		panic(err)
	}
	return key
}

// ============================================================================
//                              Endpoint - 发送目标
// ============================================================================

// EndpointKind 发送目标类型
type EndpointKind int

const (
	// EndpointSocket 本地客户端套接字
	EndpointSocket EndpointKind = iota
	// EndpointKey 远端节点（按公钥寻址）
	EndpointKey
)

// String 返回目标类型的字符串表示
func (k EndpointKind) String() string {
	switch k {
	case EndpointSocket:
		return "socket"
	case EndpointKey:
		return "key"
	default:
		return "unknown"
	}
}

// Endpoint Dispatcher 的发送目标
type Endpoint struct {
	Kind   EndpointKind
	Stream StreamKey
	Key    PublicKey
}

// SocketEndpoint 创建指向客户端套接字的目标
func SocketEndpoint(key StreamKey) Endpoint {
	return Endpoint{Kind: EndpointSocket, Stream: key}
}

// KeyEndpoint 创建指向远端节点的目标
func KeyEndpoint(key PublicKey) Endpoint {
	return Endpoint{Kind: EndpointKey, Key: key}
}

// String 返回目标的字符串表示
func (e Endpoint) String() string {
	if e.Kind == EndpointKey {
		return "key:" + e.Key.String()
	}
	return "socket:" + e.Stream.String()
}
