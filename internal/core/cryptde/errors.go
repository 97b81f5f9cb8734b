package cryptde

import "errors"

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrEmptyKey 目标公钥为空
	ErrEmptyKey = errors.New("cryptde: empty key")

	// ErrInvalidKey 公钥长度不正确
	ErrInvalidKey = errors.New("cryptde: invalid key")

	// ErrDecryptionFailed 数据不是发给本节点的，或已损坏
	ErrDecryptionFailed = errors.New("cryptde: decryption failed")

	// ErrUnknownMode 未知的加密引擎模式
	ErrUnknownMode = errors.New("cryptde: unknown mode")

	// ErrInvalidPEM 无效的 PEM 数据
	ErrInvalidPEM = errors.New("cryptde: invalid PEM data")
)
