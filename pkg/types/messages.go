package types

// ============================================================================
//                              Dispatcher 消息
// ============================================================================

// InboundClientData Dispatcher 每收到一块客户端数据产生一条
type InboundClientData struct {
	// StreamKey 客户端连接标识
	StreamKey StreamKey

	// OriginPort 本地监听器为该连接声明的端口
	// 0 表示未知
	OriginPort uint16

	// LastData 标记 Dispatcher 已知的消息结束（不一定是连接结束）
	LastData bool

	// Data 原始字节
	Data []byte
}

// HasOriginPort 检查是否报告了来源端口
func (m InboundClientData) HasOriginPort() bool {
	return m.OriginPort != 0
}

// TransmitDataMsg 交给 Dispatcher 的发送指令
type TransmitDataMsg struct {
	// Endpoint 发送目标
	Endpoint Endpoint

	// LastData 为 true 时发送后关闭目标连接
	LastData bool

	// Data 要发送的字节
	Data []byte
}
