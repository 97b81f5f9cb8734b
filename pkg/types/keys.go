package types

import (
	"bytes"

	"github.com/mr-tron/base58"
)

// ============================================================================
//                              PublicKey - 节点公钥
// ============================================================================

// PublicKey 节点公钥
//
// 中继网络中节点的唯一身份。路由中的每一跳都由公钥标识，
// 加密引擎使用公钥为该跳封装数据。
//
// 外部表示格式：
//   - String(): Base58 编码（日志、配置）
//   - ShortString(): Base58 前缀（日志简短标识）
type PublicKey []byte

// ParsePublicKey 从 Base58 字符串解析公钥
func ParsePublicKey(s string) (PublicKey, error) {
	if s == "" {
		return nil, ErrEmptyPublicKey
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	return PublicKey(raw), nil
}

// String 返回公钥的 Base58 字符串表示
func (k PublicKey) String() string {
	if len(k) == 0 {
		return ""
	}
	return base58.Encode(k)
}

// ShortString 返回公钥的短字符串表示
//
// 格式：Base58 前 8 个字符，用于日志中的简短标识。
func (k PublicKey) ShortString() string {
	s := k.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// Equal 比较两个公钥是否相同
func (k PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(k, other)
}

// IsEmpty 检查公钥是否为空
func (k PublicKey) IsEmpty() bool {
	return len(k) == 0
}

// Clone 返回公钥副本
func (k PublicKey) Clone() PublicKey {
	if k == nil {
		return nil
	}
	return append(PublicKey(nil), k...)
}

// ============================================================================
//                              PlainData / CryptData
// ============================================================================

// PlainData 明文数据
type PlainData []byte

// CryptData 密文数据
//
// 只有持有对应私钥的加密引擎才能解出明文。
type CryptData []byte

// Equal 比较两段明文
func (d PlainData) Equal(other PlainData) bool {
	return bytes.Equal(d, other)
}

// Equal 比较两段密文
func (d CryptData) Equal(other CryptData) bool {
	return bytes.Equal(d, other)
}
