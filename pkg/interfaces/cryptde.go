// Package interfaces 定义 proxygate 公共接口
//
// 本文件定义 CryptDE 接口，即加密引擎。
package interfaces

import "github.com/dep2p/go-proxygate/pkg/types"

// CryptDE 加密引擎
//
// 网关并不拥有加密能力，路由头的封装和载荷的加密都委托给 CryptDE。
type CryptDE interface {
	// PublicKey 返回本节点公钥
	PublicKey() types.PublicKey

	// Encode 为持有 key 对应私钥的节点加密数据
	Encode(key types.PublicKey, data types.PlainData) (types.CryptData, error)

	// Decode 使用本节点私钥解密数据
	Decode(data types.CryptData) (types.PlainData, error)
}
