package types

// ============================================================================
//                              Payload - 载荷
// ============================================================================

// Payload 可被封装进包并跨中继传递的载荷
type Payload interface {
	// PayloadKind 返回载荷类型标签
	PayloadKind() PayloadKind
}

// ClientRequestPayload 出站请求载荷
//
// 构造后不可修改，是被封装并发往目的地的单元。
type ClientRequestPayload struct {
	// StreamKey 客户端连接标识
	StreamKey StreamKey

	// LastData 是否为该消息的最后一块
	LastData bool

	// Data 客户端原始字节
	Data PlainData

	// TargetHostname 目标主机名
	// 空字符串表示无法嗅探出目标（透传连接）
	TargetHostname string

	// TargetPort 目标端口
	TargetPort uint16

	// Protocol 客户端协议
	Protocol ProxyProtocol

	// OriginatorPublicKey 发起网关的公钥（计费与回程寻址）
	OriginatorPublicKey PublicKey
}

// PayloadKind 实现 Payload 接口
func (p *ClientRequestPayload) PayloadKind() PayloadKind {
	return PayloadClientRequest
}

// HasTargetHostname 检查是否嗅探出目标主机名
func (p *ClientRequestPayload) HasTargetHostname() bool {
	return p.TargetHostname != ""
}

// ClientResponsePayload 回程响应载荷
//
// 必须携带与请求相同的 StreamKey，网关据此把字节送回正确的套接字。
type ClientResponsePayload struct {
	// StreamKey 客户端连接标识
	StreamKey StreamKey

	// LastResponse 是否为最后一块响应
	LastResponse bool

	// Data 响应字节
	Data PlainData
}

// PayloadKind 实现 Payload 接口
func (p *ClientResponsePayload) PayloadKind() PayloadKind {
	return PayloadClientResponse
}

var (
	_ Payload = (*ClientRequestPayload)(nil)
	_ Payload = (*ClientResponsePayload)(nil)
)
