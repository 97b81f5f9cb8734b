package config

import (
	"github.com/dep2p/go-proxygate/pkg/types"
)

// 加密引擎模式
const (
	// CryptoModeBox NaCl 密封盒（默认）
	CryptoModeBox = "box"
	// CryptoModeNull 不加密，仅用于排障
	CryptoModeNull = "null"
)

// IdentityConfig 身份配置
//
// 管理节点密钥和加密引擎选择。
type IdentityConfig struct {
	// CryptoMode 加密引擎模式: "box" 或 "null"
	CryptoMode string `json:"crypto_mode"`

	// KeyFile 私钥 PEM 文件路径
	// 为空时在内存中生成临时密钥；文件不存在时自动生成
	KeyFile string `json:"key_file,omitempty"`

	// NullKey null 模式下使用的节点公钥（Base58）
	NullKey string `json:"null_key,omitempty"`
}

// DefaultIdentityConfig 返回默认身份配置
func DefaultIdentityConfig() IdentityConfig {
	return IdentityConfig{
		CryptoMode: CryptoModeBox, // 默认使用密封盒加密
		KeyFile:    "",            // 默认空：临时密钥，生产环境应设置持久化路径
	}
}

// Validate 验证身份配置
func (c IdentityConfig) Validate() error {
	switch c.CryptoMode {
	case CryptoModeBox:
		return nil
	case CryptoModeNull:
		if c.NullKey == "" {
			return ErrNullKeyRequired
		}
		_, err := types.ParsePublicKey(c.NullKey)
		return err
	default:
		return ErrInvalidCryptoMode
	}
}
