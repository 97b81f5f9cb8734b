package types

// ============================================================================
//                              Cores Package - 多跳包
// ============================================================================

// IncipientCoresPackage 尚未发出的加密包
//
// 交给 Hopper 之后由 Hopper 独占。
type IncipientCoresPackage struct {
	// Route 完整路由
	Route Route

	// Payload 为 PayloadDestinationKey 加密的载荷
	Payload CryptData

	// PayloadDestinationKey 载荷接收方公钥
	PayloadDestinationKey PublicKey
}

// ExpiredCoresPackage 已到达本地并解密的包
type ExpiredCoresPackage struct {
	// RemainingRoute 剩余路由（通常是回程段）
	RemainingRoute Route

	// Payload 解密后的载荷字节（带类型标签）
	Payload PlainData
}
